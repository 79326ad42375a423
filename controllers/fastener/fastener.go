package fastenerControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/storefront-api/fasteners"
	"github.com/junaidrashid-git/storefront-api/validation"
)

// GET /fasteners
func GetFasteners(c *gin.Context) {
	c.JSON(http.StatusOK, fasteners.All())
}

// GET /fasteners/:type
func GetFastener(c *gin.Context) {
	cfg, ok := fasteners.Lookup(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fastener type not found"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// POST /fasteners/:type/quote
//
// Prices a selection and returns the customProduct the cart accepts for it.
func QuoteFastener(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, ok := fasteners.Lookup(c.Param("type"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fastener type not found"})
			return
		}

		var sel fasteners.Selection
		if err := c.ShouldBindJSON(&sel); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}

		quote, err := cfg.Quote(sel)
		if err != nil {
			var verr *fasteners.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selection", "problems": verr.Problems})
				return
			}
			log.Error("quote fastener", zap.String("type", cfg.Slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price selection"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"quote": quote, "customProduct": quote.CustomProduct()})
	}
}
