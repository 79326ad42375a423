package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
)

var productSheetHeaders = []string{
	"ID", "Slug", "Title", "Description", "BasePrice", "OfferPrice",
	"Stock", "Category", "Images", "CreatedAt", "UpdatedAt",
}

// GET /admin/products/export
func ExportProductsToExcel(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Preload("Images").Order("created_at asc").Find(&products).Error; err != nil {
			log.Error("export products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range productSheetHeaders {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetFloat(p.BasePrice.InexactFloat64())
			row.AddCell().SetFloat(p.OfferPrice.InexactFloat64())
			row.AddCell().SetInt(p.Stock)

			category := ""
			if p.Category != nil {
				category = p.Category.Slug
			}
			row.AddCell().SetValue(category)
			row.AddCell().SetInt(len(p.Images))

			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Error("write products workbook", zap.Error(err))
		}
	}
}
