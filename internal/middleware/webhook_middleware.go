package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"referralbridge/internal/utils"
)

// WebhookSignature verifies the base64 HMAC-SHA256 of the raw body sent in
// the X-WC-Webhook-Signature header. An empty secret disables the check.
func WebhookSignature(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, utils.MaxWebhookBodySize))
		if err != nil {
			utils.BadRequestResponse(c, "Unable to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !ValidSignature(secret, body, c.GetHeader(utils.WebhookSignatureHeader)) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_SIGNATURE", utils.ErrInvalidSignature)
			c.Abort()
			return
		}

		c.Next()
	}
}

func ValidSignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	given, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(given, Sign(secret, body))
}

func Sign(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}
