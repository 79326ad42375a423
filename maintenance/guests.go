package maintenance

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
)

// PurgeExpiredGuests deletes guests that expired before now together with
// their carts and cart items. It returns the number of guests removed.
func PurgeExpiredGuests(db *gorm.DB, now time.Time) (int64, error) {
	var purged int64
	err := db.Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&models.GuestUser{}).Select("id").Where("expiration_date <= ?", now.UTC())
		carts := tx.Model(&models.Cart{}).Select("id").Where("guest_user_id IN (?)", expired)

		if err := tx.Where("cart_id IN (?)", carts).Delete(&models.CartItem{}).Error; err != nil {
			return errors.Wrap(err, "delete expired guest cart items")
		}
		if err := tx.Where("guest_user_id IN (?)", expired).Delete(&models.Cart{}).Error; err != nil {
			return errors.Wrap(err, "delete expired guest carts")
		}
		res := tx.Where("expiration_date <= ?", now.UTC()).Delete(&models.GuestUser{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete expired guests")
		}
		purged = res.RowsAffected
		return nil
	})
	return purged, err
}

// RunGuestPurge purges expired guests once at start and then every
// interval until ctx is cancelled. A non-positive interval disables it.
func RunGuestPurge(ctx context.Context, db *gorm.DB, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		log.Warn("guest purge disabled", zap.Duration("interval", interval))
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := PurgeExpiredGuests(db.WithContext(ctx), time.Now())
		switch {
		case err != nil && ctx.Err() == nil:
			log.Error("guest purge failed", zap.Error(err))
		case n > 0:
			log.Info("expired guests purged", zap.Int64("guests", n))
		}
		log.Debug("next guest purge scheduled", zap.Time("at", time.Now().Add(interval)))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
