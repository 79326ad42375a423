package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/database/dbtest"
	"github.com/junaidrashid-git/storefront-api/models"
)

func guestWithCart(t *testing.T, db *gorm.DB, expires time.Time) models.GuestUser {
	t.Helper()
	guest := models.GuestUser{ExpirationDate: expires}
	require.NoError(t, db.Create(&guest).Error)
	cart := models.Cart{GuestUserID: &guest.ID, CartItems: []models.CartItem{
		{Quantity: 1, CustomProduct: models.JSONMap{"title": "Custom Bolt"}},
	}}
	require.NoError(t, db.Create(&cart).Error)
	return guest
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestPurgeExpiredGuests(t *testing.T) {
	db := dbtest.Open(t)
	now := time.Now().UTC()
	guestWithCart(t, db, now.Add(-time.Hour))
	guestWithCart(t, db, now.Add(-48*time.Hour))
	live := guestWithCart(t, db, now.Add(time.Hour))

	userID := "user-1"
	require.NoError(t, db.Create(&models.Cart{UserID: &userID, CartItems: []models.CartItem{{Quantity: 2, CustomProduct: models.JSONMap{}}}}).Error)

	n, err := PurgeExpiredGuests(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var guests []models.GuestUser
	require.NoError(t, db.Find(&guests).Error)
	require.Len(t, guests, 1)
	assert.Equal(t, live.ID, guests[0].ID)
	assert.EqualValues(t, 2, count(t, db, &models.Cart{}))
	assert.EqualValues(t, 2, count(t, db, &models.CartItem{}))

	n, err = PurgeExpiredGuests(db, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunGuestPurgeStopsOnCancel(t *testing.T) {
	db := dbtest.Open(t)
	guestWithCart(t, db, time.Now().UTC().Add(-time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunGuestPurge(ctx, db, time.Hour, zap.NewNop())
		close(done)
	}()

	require.Eventually(t, func() bool {
		var n int64
		return db.Model(&models.GuestUser{}).Count(&n).Error == nil && n == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunGuestPurge did not return after cancel")
	}
}

func TestRunGuestPurgeWithoutInterval(t *testing.T) {
	db := dbtest.Open(t)
	guestWithCart(t, db, time.Now().UTC().Add(-time.Minute))

	assert.NotPanics(t, func() { RunGuestPurge(context.Background(), db, 0, zap.NewNop()) })
	assert.EqualValues(t, 1, count(t, db, &models.GuestUser{}))
}
