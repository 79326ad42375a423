package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/storefront-api/payment/razorpay"
)

// RazorpayWebhookAuth verifies X-Razorpay-Signature over the raw body and
// restores the body for the next handler.
func RazorpayWebhookAuth(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "webhooks are not configured"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signature := c.GetHeader(razorpay.SignatureHeader)
		if signature == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing webhook signature"})
			return
		}
		if !razorpay.VerifyWebhookSignature(secret, body, signature) {
			log.Warn("razorpay webhook signature mismatch", zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			return
		}
		c.Next()
	}
}
