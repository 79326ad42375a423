package orderControllers

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/payment/razorpay"
	"github.com/junaidrashid-git/storefront-api/validation"
)

type checkoutInput struct {
	Address models.Address `json:"address" binding:"required"`
}

// checkoutError is a cart problem the customer can fix.
type checkoutError struct{ msg string }

func (e checkoutError) Error() string { return e.msg }

var hundred = decimal.NewFromInt(100)

// newReceipt returns a sortable receipt id for the gateway order.
func newReceipt() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// orderLines prices every cart line and checks stock for catalog products.
func orderLines(cart *models.Cart) ([]models.OrderItem, decimal.Decimal, error) {
	total := decimal.Zero
	lines := make([]models.OrderItem, 0, len(cart.CartItems))
	for _, item := range cart.CartItems {
		unit, ok := cartControllers.UnitPrice(item)
		if !ok {
			return nil, total, checkoutError{"A product in your cart is no longer available. Please remove it and try again."}
		}

		line := models.OrderItem{
			ProductID: item.ProductID,
			Color:     item.Color,
			Quantity:  item.Quantity,
			UnitPrice: unit,
		}
		if item.IsCustom() {
			line.CustomProduct = item.CustomProduct
			line.Title, _ = item.CustomProduct.String("title")
			if line.Title == "" {
				line.Title = "Custom Fastener"
			}
		} else {
			if item.Product.Stock < item.Quantity {
				return nil, total, checkoutError{"Not enough stock for " + item.Product.Title}
			}
			line.Title = item.Product.Title
		}

		total = total.Add(line.LineTotal())
		lines = append(lines, line)
	}
	return lines, total, nil
}

// POST /checkout
//
// Prices the caller's cart, opens a Razorpay order for the total and
// records a pending order keyed by the Razorpay order suffix.
func Checkout(db *gorm.DB, gateway razorpay.Gateway, currency string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input checkoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}

		cart, err := cartControllers.FindUserCart(db, userID)
		if err != nil {
			log.Error("checkout: load cart", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}
		if cart == nil || len(cart.CartItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		}

		lines, total, err := orderLines(cart)
		if err != nil {
			var ce checkoutError
			if errors.As(err, &ce) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ce.msg})
				return
			}
			log.Error("checkout: price cart", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price cart"})
			return
		}
		if !total.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order total must be greater than zero"})
			return
		}

		receipt := newReceipt()
		rzOrder, err := gateway.CreateOrder(c.Request.Context(), razorpay.OrderRequest{
			Amount:   total.Mul(hundred).Round(0).IntPart(),
			Currency: currency,
			Receipt:  receipt,
			Notes:    map[string]string{"user_id": userID},
		})
		if err != nil {
			log.Error("checkout: create razorpay order", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway is unavailable. Please try again."})
			return
		}
		ref := razorpay.OrderRef(rzOrder.ID)
		if ref == "" {
			log.Error("checkout: malformed razorpay order id", zap.String("razorpay_order_id", rzOrder.ID))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway is unavailable. Please try again."})
			return
		}

		order := models.Order{
			OrderRef:   ref,
			UserID:     userID,
			Status:     models.OrderStatusPending,
			Amount:     total,
			Receipt:    receipt,
			RzrOrderID: rzOrder.ID,
			Address:    input.Address,
			OrderItems: lines,
		}
		if err := db.Create(&order).Error; err != nil {
			log.Error("checkout: create order", zap.String("order_id", ref), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		log.Info("order created", zap.String("order_id", ref), zap.String("user_id", userID),
			zap.String("amount", total.StringFixed(2)))
		c.JSON(http.StatusOK, gin.H{
			"orderId":         order.OrderRef,
			"razorpayOrderId": rzOrder.ID,
			"amount":          rzOrder.Amount,
			"currency":        rzOrder.Currency,
			"keyId":           gateway.KeyID(),
		})
	}
}
