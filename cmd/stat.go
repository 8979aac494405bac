package cmd

import (
	"fmt"

	"resource-union/core/config"
	"resource-union/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statCmd represents the stat command
var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show metadata of a resource resolved through the union",
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

		resource := store.GetResource(path)

		filePreferred, err := resource.IsFilePreferred()
		if err != nil {
			return fmt.Errorf("failed to query resource: %w", err)
		}

		conn, err := resource.Open()
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

		fmt.Printf("Path: %s\n", path)
		fmt.Printf("Store: %s\n", store.String())
		fmt.Printf("Exists: %t\n", exists)
		fmt.Printf("FilePreferred: %t\n", filePreferred)

		if exists {
			length, err := conn.Length()
			if err != nil {
				return err
			}
			modified, err := conn.LastModified()
			if err != nil {
				return err
			}
			fmt.Printf("Length: %d\n", length)
			fmt.Printf("LastModified: %s\n", modified)
		}

		file, err := conn.File()
		if err != nil {
			return err
		}
		if file != "" {
			fmt.Printf("File: %s\n", file)
		}

		logg.Info("stat completed", zap.String("path", path), zap.Bool("exists", exists))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statCmd)
}
