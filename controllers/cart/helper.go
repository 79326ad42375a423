package cartControllers

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
)

// MaxItemQuantity caps a single line in the cart.
const MaxItemQuantity = 10

var (
	errMaxQuantity    = errors.New("Maximum quantity of 10 reached for this item!")
	errUnknownProduct = errors.New("Product does not exist")
	errGuestNotFound  = errors.New("guest user not found")
	errCartNotFound   = errors.New("cart not found")
	errNoCartOwner    = errors.New("cart needs a user or a guest")
)

func createGuestUser(db *gorm.DB, ttl time.Duration) (*models.GuestUser, error) {
	guest := models.GuestUser{ExpirationDate: time.Now().UTC().Add(ttl)}
	if err := db.Create(&guest).Error; err != nil {
		return nil, errors.Wrap(err, "create guest user")
	}
	return &guest, nil
}

// findGuestUser ignores guests whose expiration date has passed.
func findGuestUser(db *gorm.DB, guestID string) (*models.GuestUser, error) {
	var guest models.GuestUser
	err := db.Where("id = ? AND expiration_date > ?", guestID, time.Now().UTC()).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errGuestNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find guest user %s", guestID)
	}
	return &guest, nil
}

type owner struct {
	userID  string
	guestID string
}

func (o owner) scope(db *gorm.DB) *gorm.DB {
	if o.userID != "" {
		return db.Where("user_id = ?", o.userID)
	}
	return db.Where("guest_user_id = ?", o.guestID)
}

func findCart(db *gorm.DB, o owner) (*models.Cart, error) {
	if o.userID == "" && o.guestID == "" {
		return nil, errNoCartOwner
	}
	var cart models.Cart
	err := o.scope(db).Preload("CartItems").First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCartNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find cart")
	}
	return &cart, nil
}

func findOrCreateCart(db *gorm.DB, o owner) (*models.Cart, error) {
	cart, err := findCart(db, o)
	if err == nil || !errors.Is(err, errCartNotFound) {
		return cart, err
	}

	cart = &models.Cart{}
	if o.userID != "" {
		cart.UserID = &o.userID
	} else {
		cart.GuestUserID = &o.guestID
	}
	if err := db.Create(cart).Error; err != nil {
		return nil, errors.Wrap(err, "create cart")
	}
	return cart, nil
}

// findCartWithProducts loads items newest first with their products and
// images. Soft-deleted products come back as a nil Product.
func findCartWithProducts(db *gorm.DB, o owner) (*models.Cart, error) {
	var cart models.Cart
	err := o.scope(db).
		Preload("CartItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("CartItems.Product").
		Preload("CartItems.Product.Images").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCartNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find cart with products")
	}
	return &cart, nil
}

// FindUserCart returns the user's cart with products, or nil when the
// user has no cart yet.
func FindUserCart(db *gorm.DB, userID string) (*models.Cart, error) {
	cart, err := findCartWithProducts(db, owner{userID: userID})
	if errors.Is(err, errCartNotFound) {
		return nil, nil
	}
	return cart, err
}

// ClearUserCart removes every item from the user's cart.
func ClearUserCart(db *gorm.DB, userID string) error {
	err := db.Where("cart_id IN (?)", db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)).
		Delete(&models.CartItem{}).Error
	return errors.Wrapf(err, "clear cart of user %s", userID)
}

func sameColor(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// addItem applies the add-to-cart rules: custom products always get a new
// line, a repeated (product, color) pair bumps its quantity by one.
func addItem(db *gorm.DB, cart *models.Cart, in addItemInput) (*models.CartItem, error) {
	if in.CustomProduct != nil {
		item := models.CartItem{
			CartID:        cart.ID,
			Quantity:      in.Quantity,
			Color:         in.Color,
			CustomProduct: in.CustomProduct,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, errors.Wrap(err, "create custom cart item")
		}
		return &item, nil
	}

	for i := range cart.CartItems {
		existing := &cart.CartItems[i]
		if existing.IsCustom() || existing.ProductID == nil || *existing.ProductID != *in.ProductID {
			continue
		}
		if !sameColor(existing.Color, in.Color) {
			continue
		}
		if existing.Quantity >= MaxItemQuantity {
			return nil, errMaxQuantity
		}
		existing.Quantity++
		if err := db.Model(existing).Update("quantity", existing.Quantity).Error; err != nil {
			return nil, errors.Wrap(err, "increase cart item quantity")
		}
		return existing, nil
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Color:     in.Color,
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, errors.Wrap(err, "create cart item")
	}
	return &item, nil
}

func productExists(db *gorm.DB, productID string) (bool, error) {
	var count int64
	if err := db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "look up product %s", productID)
	}
	return count > 0, nil
}
