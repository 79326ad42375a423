package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/config"
	"github.com/junaidrashid-git/storefront-api/database"
	"github.com/junaidrashid-git/storefront-api/logger"
)

var (
	verbose bool

	cfg *config.Config
	log *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront API: catalog, cart, checkout and service inquiries",
	Long: `storefront serves the HTTP API behind the shop front end.

Configuration is read from a .env file and STOREFRONT_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		log, err = logger.New(cfg.Env, level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// migrateCmd creates or updates the database schema and exits
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		log.Info("✅ schema up to date")
		return closeDatabase(db)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(purgeGuestsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase connects and auto-migrates every table.
func openDatabase() (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = closeDatabase(db)
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
