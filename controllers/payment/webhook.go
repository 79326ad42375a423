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

const (
	eventPaymentCaptured = "payment.captured"
	eventOrderPaid       = "order.paid"
)

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity razorpay.Payment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// POST /payment/webhook
//
// Backstop for checkouts whose browser never reached /payment/verify. The
// route sits behind middleware.RazorpayWebhookAuth, so the body is already
// authenticated. Unknown orders and events are acknowledged so Razorpay
// stops retrying them.
func Webhook(db *gorm.DB, store cache.Cache, broadcaster OrderBroadcaster, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event webhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
			return
		}
		entity := event.Payload.Payment.Entity
		ref := razorpay.OrderRef(entity.OrderID)
		log := log.With(zap.String("event", event.Event), zap.String("order_id", ref), zap.String("payment_id", entity.ID))

		if ref == "" {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		switch event.Event {
		case eventPaymentCaptured, eventOrderPaid:
			order, paid, err := finalizeOrder(c.Request.Context(), db, store, ref, &entity, log)
			if errors.Is(err, errOrderNotFound) {
				log.Warn("webhook for unknown order")
				c.JSON(http.StatusOK, gin.H{"status": "ignored"})
				return
			}
			if err != nil {
				log.Error("finalize order from webhook", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
				return
			}
			if paid {
				log.Info("order paid via webhook")
				broadcaster.Broadcast(*order)
			}
		case eventPaymentFailed:
			changed, err := failOrder(db, ref)
			if err != nil {
				log.Error("mark order failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
				return
			}
			if changed {
				log.Info("order marked failed")
			}
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
