package cartControllers

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
)

// MergeGuestCart moves the guest's cart into the user's cart and deletes
// the guest cart. Custom items are always carried over. Regular items are
// matched on (product, color); when both carts hold the same line, the one
// touched last decides the quantity. Expired guests have nothing to merge.
func MergeGuestCart(db *gorm.DB, guestID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := findGuestUser(tx, guestID); err != nil {
			if errors.Is(err, errGuestNotFound) {
				return nil
			}
			return err
		}

		guestCart, err := findCart(tx, owner{guestID: guestID})
		if errors.Is(err, errCartNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		userCart, err := findCart(tx, owner{userID: userID})
		if errors.Is(err, errCartNotFound) {
			err = tx.Model(guestCart).Updates(map[string]interface{}{
				"user_id":       userID,
				"guest_user_id": nil,
			}).Error
			return errors.Wrap(err, "hand guest cart to user")
		}
		if err != nil {
			return err
		}

		for _, guestItem := range guestCart.CartItems {
			if !guestItem.IsCustom() {
				if existing := findLine(userCart.CartItems, guestItem); existing != nil {
					if guestItem.UpdatedAt.After(existing.UpdatedAt) {
						quantity := guestItem.Quantity
						if quantity > MaxItemQuantity {
							quantity = MaxItemQuantity
						}
						if err := tx.Model(existing).Update("quantity", quantity).Error; err != nil {
							return errors.Wrap(err, "merge cart item quantity")
						}
					}
					continue
				}
			}

			if err := tx.Model(&models.CartItem{}).Where("id = ?", guestItem.ID).
				Update("cart_id", userCart.ID).Error; err != nil {
				return errors.Wrap(err, "move guest cart item")
			}
			userCart.CartItems = append(userCart.CartItems, guestItem)
		}

		if err := tx.Where("cart_id = ?", guestCart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return errors.Wrap(err, "delete merged guest items")
		}
		return errors.Wrap(tx.Delete(guestCart).Error, "delete guest cart")
	})
}

func findLine(items []models.CartItem, item models.CartItem) *models.CartItem {
	for i := range items {
		if items[i].IsCustom() || items[i].ProductID == nil {
			continue
		}
		if *items[i].ProductID == *item.ProductID && sameColor(items[i].Color, item.Color) {
			return &items[i]
		}
	}
	return nil
}
