package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/fasteners"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/session"
	"github.com/junaidrashid-git/storefront-api/validation"
)

type addItemInput struct {
	ProductID     *string        `json:"productId"`
	Quantity      int            `json:"quantity" binding:"required,min=1,max=100"`
	Color         *string        `json:"color"`
	CustomProduct models.JSONMap `json:"customProduct"`
}

type updateItemInput struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required,max=100"`
}

func invalidData(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data format: " + msg, "item": nil})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "item": nil})
}

func serverError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "item": nil})
}

// POST /cart
func AddItem(db *gorm.DB, guestTTL time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input addItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			invalidData(c, validation.Message(err))
			return
		}

		if input.CustomProduct != nil {
			cp, err := normalizeCustomProduct(input.CustomProduct)
			if err != nil {
				var verr *fasteners.ValidationError
				if errors.As(err, &verr) {
					invalidData(c, verr.Error())
					return
				}
				log.Error("normalize custom product", zap.Error(err))
				serverError(c)
				return
			}
			input.CustomProduct = cp
			input.ProductID = nil
		} else if input.ProductID == nil || *input.ProductID == "" {
			invalidData(c, "productId or customProduct is required")
			return
		}

		var (
			item     *models.CartItem
			newGuest string
		)
		err := db.Transaction(func(tx *gorm.DB) error {
			if input.ProductID != nil {
				ok, err := productExists(tx, *input.ProductID)
				if err != nil {
					return err
				}
				if !ok {
					return errUnknownProduct
				}
			}

			o, err := callerOwner(tx, c)
			if err != nil {
				return err
			}
			if o.userID == "" && o.guestID == "" {
				guest, err := createGuestUser(tx, guestTTL)
				if err != nil {
					return err
				}
				o.guestID = guest.ID
				newGuest = guest.ID
			}

			cart, err := findOrCreateCart(tx, o)
			if err != nil {
				return err
			}
			item, err = addItem(tx, cart, input)
			return err
		})

		switch {
		case err == nil:
		case errors.Is(err, errGuestNotFound):
			session.ClearGuestCookie(c)
			badRequest(c, "Invalid guest user ID in the cookie.")
			return
		case errors.Is(err, errMaxQuantity), errors.Is(err, errUnknownProduct):
			badRequest(c, err.Error())
			return
		default:
			log.Error("add cart item", zap.Error(err))
			serverError(c)
			return
		}

		if newGuest != "" {
			session.SetGuestCookie(c, newGuest, guestTTL)
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

// PATCH /cart
func UpdateItem(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input updateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			invalidData(c, validation.Message(err))
			return
		}

		item, err := findOwnItem(db, c, input.ItemID)
		if errors.Is(err, errGuestNotFound) {
			session.ClearGuestCookie(c)
			badRequest(c, "Invalid guest user ID in the cookie.")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, "No matching product found in your cart.")
			return
		}
		if err != nil {
			log.Error("find cart item", zap.String("item_id", input.ItemID), zap.Error(err))
			serverError(c)
			return
		}

		quantity := *input.Quantity
		if quantity > MaxItemQuantity {
			badRequest(c, errMaxQuantity.Error())
			return
		}
		if quantity < 1 {
			badRequest(c, "Minimum quantity is 1!")
			return
		}

		if err := db.Model(item).Update("quantity", quantity).Error; err != nil {
			log.Error("update cart item", zap.String("item_id", item.ID), zap.Error(err))
			serverError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

// DELETE /cart?itemId=
func DeleteItem(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Query("itemId")
		if itemID == "" {
			badRequest(c, "Item ID missing from URL parameters.")
			return
		}

		item, err := findOwnItem(db, c, itemID)
		if errors.Is(err, errGuestNotFound) {
			session.ClearGuestCookie(c)
			badRequest(c, "Invalid guest user ID in the cookie.")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, "No such item exists in your cart.")
			return
		}
		if err != nil {
			log.Error("find cart item", zap.String("item_id", itemID), zap.Error(err))
			serverError(c)
			return
		}

		if err := db.Delete(item).Error; err != nil {
			log.Error("delete cart item", zap.String("item_id", itemID), zap.Error(err))
			serverError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": gin.H{}})
	}
}

// GET /cart
func GetCart(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := session.GuestID(c)
		userID, loggedIn := middleware.UserID(c)

		if !loggedIn {
			if guestID == "" {
				c.JSON(http.StatusOK, gin.H{"item": []itemView{}})
				return
			}
			cart, err := findCartWithProducts(db, owner{guestID: guestID})
			if err == nil {
				_, err = findGuestUser(db, guestID)
			}
			if errors.Is(err, errCartNotFound) || errors.Is(err, errGuestNotFound) {
				session.ClearGuestCookie(c)
				badRequest(c, "Invalid Guest ID.")
				return
			}
			if err != nil {
				log.Error("load guest cart", zap.String("guest_id", guestID), zap.Error(err))
				serverError(c)
				return
			}
			c.JSON(http.StatusOK, gin.H{"item": presentItems(cart.CartItems)})
			return
		}

		if guestID != "" {
			if err := MergeGuestCart(db, guestID, userID); err != nil {
				log.Error("merge guest cart", zap.String("guest_id", guestID), zap.String("user_id", userID), zap.Error(err))
				serverError(c)
				return
			}
		}

		cart, err := FindUserCart(db, userID)
		if err != nil {
			log.Error("load user cart", zap.String("user_id", userID), zap.Error(err))
			serverError(c)
			return
		}

		session.ClearGuestCookie(c)
		if cart == nil {
			c.JSON(http.StatusOK, gin.H{"item": []itemView{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": presentItems(cart.CartItems)})
	}
}

// callerOwner resolves whose cart the request addresses. A guest cookie
// only counts while the guest has not expired.
func callerOwner(db *gorm.DB, c *gin.Context) (owner, error) {
	if userID, ok := middleware.UserID(c); ok {
		return owner{userID: userID}, nil
	}
	guestID := session.GuestID(c)
	if guestID == "" {
		return owner{}, nil
	}
	guest, err := findGuestUser(db, guestID)
	if err != nil {
		return owner{}, err
	}
	return owner{guestID: guest.ID}, nil
}

// findOwnItem looks the item up inside the caller's cart only.
func findOwnItem(db *gorm.DB, c *gin.Context, itemID string) (*models.CartItem, error) {
	o, err := callerOwner(db, c)
	if err != nil {
		return nil, err
	}
	if o.userID == "" && o.guestID == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var item models.CartItem
	err = db.Where("id = ? AND cart_id IN (?)", itemID, o.scope(db.Model(&models.Cart{})).Select("id")).
		First(&item).Error
	return &item, err
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		cart, err := FindUserCart(db, userID)
		if err != nil {
			log.Error("load user cart for admin", zap.String("user_id", userID), zap.Error(err))
			serverError(c)
			return
		}
		if cart == nil {
			c.JSON(http.StatusOK, gin.H{"item": []itemView{}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": presentItems(cart.CartItems)})
	}
}
