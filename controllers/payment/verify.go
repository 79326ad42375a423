package paymentControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/payment/razorpay"
)

const eventPaymentFailed = "payment.failed"

type verifyInput struct {
	Event     string `json:"event"`
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
}

// POST /payment/verify
//
// Called by the checkout page after Razorpay reports back. The payment is
// re-fetched from Razorpay rather than trusted from the body, and the
// X-Razorpay-Signature header must be HMAC-SHA256(secret, order_id|payment_id).
func Verify(db *gorm.DB, gateway razorpay.Gateway, secret string, store cache.Cache, broadcaster OrderBroadcaster, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input verifyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_id and payment_id are required", "verified": false})
			return
		}
		log := log.With(zap.String("razorpay_order_id", input.OrderID), zap.String("payment_id", input.PaymentID))

		entity, err := gateway.FetchPayment(c.Request.Context(), input.PaymentID)
		if err != nil {
			log.Error("fetch payment", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"verified": false})
			return
		}
		ref := razorpay.OrderRef(entity.OrderID)
		if ref == "" {
			log.Error("payment has no order", zap.String("entity_order_id", entity.OrderID))
			c.JSON(http.StatusInternalServerError, gin.H{"verified": false})
			return
		}

		if input.Event == eventPaymentFailed {
			if err := dropPendingOrder(db, ref); err != nil {
				log.Error("drop failed order", zap.String("order_id", ref), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"verified": false})
				return
			}
			log.Info("payment failed, pending order removed", zap.String("order_id", ref))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment failed", "verified": false})
			return
		}

		signature := c.GetHeader(razorpay.SignatureHeader)
		if entity.OrderID != input.OrderID || !razorpay.VerifyPaymentSignature(secret, input.OrderID, input.PaymentID, signature) {
			log.Warn("payment signature mismatch", zap.String("order_id", ref), zap.String("client_ip", c.ClientIP()))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "Payment Signatures Do Not Match. Please contact support for help",
				"verified": false,
			})
			return
		}

		order, paid, err := finalizeOrder(c.Request.Context(), db, store, ref, entity, log)
		if err != nil {
			if errors.Is(err, errOrderNotFound) {
				log.Error("verified payment for unknown order", zap.String("order_id", ref))
			} else {
				log.Error("finalize order", zap.String("order_id", ref), zap.Error(err))
			}
			c.JSON(http.StatusInternalServerError, gin.H{"verified": false})
			return
		}
		if paid {
			log.Info("payment verified", zap.String("order_id", ref), zap.String("amount", order.Amount.StringFixed(2)))
			broadcaster.Broadcast(*order)
		}
		c.JSON(http.StatusOK, gin.H{"verified": true})
	}
}
