package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/storefront-api/maintenance"
)

// purgeGuestsCmd deletes expired guests and their carts once
var purgeGuestsCmd = &cobra.Command{
	Use:   "purge-guests",
	Short: "Delete expired guest users together with their carts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		n, err := maintenance.PurgeExpiredGuests(db.WithContext(cmd.Context()), time.Now())
		if err != nil {
			return err
		}
		log.Info("🗑️ expired guests purged", zap.Int64("guests", n))
		return nil
	},
}
