package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"library/internal/config"
	"library/internal/database"
	"library/internal/services"
)

func main() {
	root := &cobra.Command{
		Use:           "library",
		Short:         "Library records API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newStaffCmd())

	if err := root.Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// openService loads configuration and connects the store. The caller closes db.
func openService() (*config.Config, *gorm.DB, services.LibraryService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	svc := services.NewLibraryService(db, services.NewRepositories(db),
		services.WithBorrowWindow(cfg.BorrowWindowDays))
	return cfg, db, svc, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the library tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, _, err := openService()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Printf("[INFO] migrate: schema is up to date")
			return nil
		},
	}
}
