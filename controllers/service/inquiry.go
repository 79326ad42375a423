package serviceControllers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/notify"
	"github.com/junaidrashid-git/storefront-api/validation"
)

// Values of formDetails["type"] besides the manufacturing service types.
const (
	TypeWiringHarness = "wiringHarness"
	TypeBatteryPack   = "batteryPack"
)

// fileInput is the object returned by UploadFile.
type fileInput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
}

// inquiry is one of the inquiry forms after JSON binding.
type inquiry interface {
	// problems reports rules the binding tags cannot express.
	problems() []string
	details() models.JSONMap
	attachment() *fileInput
}

// POST /service
func SubmitManufacturing(db *gorm.DB, notifier notify.Notifier, log *zap.Logger) gin.HandlerFunc {
	return submit(db, notifier, log, func() inquiry { return &manufacturingInput{} })
}

// POST /service/wiring-harness
func SubmitWiringHarness(db *gorm.DB, notifier notify.Notifier, log *zap.Logger) gin.HandlerFunc {
	return submit(db, notifier, log, func() inquiry { return &wiringHarnessInput{} })
}

// POST /service/battery-inquiry
func SubmitBatteryInquiry(db *gorm.DB, notifier notify.Notifier, log *zap.Logger) gin.HandlerFunc {
	return submit(db, notifier, log, func() inquiry { return &batteryInput{} })
}

func submit(db *gorm.DB, notifier notify.Notifier, log *zap.Logger, newInput func() inquiry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		in := newInput()
		if err := c.ShouldBindJSON(in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validation.Messages(err)})
			return
		}
		if problems := in.problems(); len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": problems})
			return
		}

		service := models.Service{UserID: userID, FormDetails: in.details()}
		if f := in.attachment(); f != nil && f.URL != "" {
			service.FileName = optional(f.Name)
			service.FileURL = optional(f.URL)
			service.FileType = optional(f.Type)
			service.FilePublicID = optional(f.PublicID)
		}

		if err := db.Create(&service).Error; err != nil {
			log.Error("create service inquiry", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error submitting form"})
			return
		}
		log.Info("service inquiry received", zap.String("service_id", service.ID), zap.String("type", service.Type()))

		subject, body := describe(service)
		if err := notifier.Notify(c.Request.Context(), subject, body); err != nil {
			log.Warn("notify staff of inquiry", zap.String("service_id", service.ID), zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": service})
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// describe renders the staff notification for a stored inquiry.
func describe(s models.Service) (subject, body string) {
	subject = fmt.Sprintf("New %s inquiry", s.Type())

	keys := make([]string, 0, len(s.FormDetails))
	for k := range s.FormDetails {
		if k != "type" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Inquiry: %s\nType: %s\nUser: %s\n", s.ID, s.Type(), s.UserID)
	if s.FileURL != nil {
		fmt.Fprintf(&b, "File: %s\n", *s.FileURL)
	}
	b.WriteString("\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, s.FormDetails[k])
	}
	return subject, b.String()
}
