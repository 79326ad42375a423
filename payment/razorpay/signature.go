package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries both checkout and webhook signatures.
const SignatureHeader = "X-Razorpay-Signature"

// Sign returns hex(HMAC-SHA256(secret, payload)).
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// PaymentSignature is the checkout signature over "order_id|payment_id".
func PaymentSignature(secret, orderID, paymentID string) string {
	return Sign(secret, []byte(orderID+"|"+paymentID))
}

func VerifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	return equal(PaymentSignature(secret, orderID, paymentID), signature)
}

func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	return equal(Sign(secret, body), signature)
}

func equal(expected, got string) bool {
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(got))))
}

// OrderRef derives the storefront order reference from a Razorpay order id:
// "order_Abc123" becomes "ABC123". It returns "" for malformed ids.
func OrderRef(razorpayOrderID string) string {
	_, suffix, ok := strings.Cut(razorpayOrderID, "_")
	if !ok || suffix == "" {
		return ""
	}
	return strings.ToUpper(suffix)
}
