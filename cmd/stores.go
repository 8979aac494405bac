package cmd

import (
	"fmt"
	"io"

	"resource-union/core/config"
	"resource-union/core/database"
	"resource-union/core/storage"
	"resource-union/resources"
	"resource-union/resources/dbstore"
	"resource-union/resources/local"
	"resource-union/resources/s3"
	"resource-union/resources/union"
	"resource-union/resources/zipfile"

	"github.com/spf13/cobra"
)

// registry interns union stores for the lifetime of the process. The
// command layer is the composition root and owns it.
var registry = union.NewRegistry()

// storesCmd represents the stores command
var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Print the configured union composition",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, cleanup, err := buildUnion(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Println(store.String())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(storesCmd)
}

// buildUnion constructs the configured member stores in declared order and
// interns their union. The returned cleanup releases members that hold
// open handles (the zip archive).
func buildUnion(cfg *config.Config) (*union.Store, func(), error) {
	var members []resources.Store
	var closers []io.Closer

	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	for _, kind := range cfg.Stores.Kinds() {
		switch kind {
		case "local":
			store, err := local.NewStore(cfg.Stores.LocalRoot)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("failed to create local store: %w", err)
			}
			members = append(members, store)
		case "archive":
			store, err := zipfile.NewStore(cfg.Stores.ArchivePath)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("failed to create archive store: %w", err)
			}
			closers = append(closers, store)
			members = append(members, store)
		case "s3":
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
			}
			members = append(members, s3.NewStore(client, cfg.Storage.Bucket))
		case "db":
			db, err := database.Connect(cfg.Database)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("database connection required: %w", err)
			}
			members = append(members, dbstore.NewStore(db, cfg.Database.Name))
		default:
			cleanup()
			return nil, nil, fmt.Errorf("unknown store kind %q in stores.order", kind)
		}
	}

	store, err := registry.Union(members...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to compose union: %w", err)
	}
	return store, cleanup, nil
}
