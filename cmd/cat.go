package cmd

import (
	"fmt"
	"io"
	"os"

	"resource-union/core/config"
	"resource-union/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Stream a resource resolved through the union to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logg = logger.WithRunID(logg)

		store, cleanup, err := buildUnion(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		conn, err := store.GetResource(path).Open()
		if err != nil {
			return fmt.Errorf("failed to open resource: %w", err)
		}
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				logg.Warn("failed to close connection", zap.Error(cerr))
			}
		}()

		exists, err := conn.Exists()
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("resource %q not found in %s", path, store.String())
		}

		reader, err := conn.Reader()
		if err != nil {
			return err
		}

		written, err := io.Copy(os.Stdout, reader)
		if err != nil {
			return fmt.Errorf("failed to stream resource: %w", err)
		}

		logg.Info("cat completed", zap.String("path", path), zap.Int64("bytes", written))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catCmd)
}
