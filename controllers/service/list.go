package serviceControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
)

var serviceSheetHeaders = []string{
	"ID", "UserID", "Type", "FileName", "FileURL", "FileType", "Details", "CreatedAt",
}

// GET /service
func GetUserServices(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var services []models.Service
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&services).Error; err != nil {
			log.Error("list user services", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch inquiries"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": services})
	}
}

// listServices returns every inquiry, newest first, optionally narrowed to
// one formDetails type.
func listServices(db *gorm.DB, kind string) ([]models.Service, error) {
	var all []models.Service
	if err := db.Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, err
	}
	if kind == "" {
		return all, nil
	}
	out := all[:0]
	for _, s := range all {
		if s.Type() == kind {
			out = append(out, s)
		}
	}
	return out, nil
}

// GET /admin/services?type=wiringHarness
func GetAllServices(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		services, err := listServices(db, c.Query("type"))
		if err != nil {
			log.Error("list services", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch inquiries"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": services})
	}
}

// GET /admin/services/export?type=batteryPack
func ExportServicesToExcel(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		services, err := listServices(db, c.Query("type"))
		if err != nil {
			log.Error("export services", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Inquiries")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range serviceSheetHeaders {
			headerRow.AddCell().SetValue(h)
		}

		for _, s := range services {
			row := sheet.AddRow()
			row.AddCell().SetValue(s.ID)
			row.AddCell().SetValue(s.UserID)
			row.AddCell().SetValue(s.Type())
			row.AddCell().SetValue(deref(s.FileName))
			row.AddCell().SetValue(deref(s.FileURL))
			row.AddCell().SetValue(deref(s.FileType))

			details, err := json.Marshal(s.FormDetails)
			if err != nil {
				log.Warn("encode inquiry details", zap.String("service_id", s.ID), zap.Error(err))
			}
			row.AddCell().SetValue(string(details))
			row.AddCell().SetValue(s.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=service_inquiries.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Error("write services workbook", zap.Error(err))
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
