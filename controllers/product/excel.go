package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/models"
)

// POST /admin/products/import
//
// Reads the first sheet in the export layout. Rows are matched to existing
// products by slug; unknown slugs create products. Rows with a missing
// title or unparsable prices are skipped.
func ImportProductsFromExcel(db *gorm.DB, store cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer f.Close()

		xlFile, err := xlsx.OpenReaderAt(f, fh.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		categories := map[string]string{}
		var all []models.Category
		if err := db.Find(&all).Error; err != nil {
			log.Error("load categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		for _, cat := range all {
			categories[cat.Slug] = cat.ID
		}

		sheet := xlFile.Sheets[0]
		created, updated, skipped := 0, 0, 0
		var touched []string

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]
			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			product, ok := productFromRow(get, categories)
			if !ok {
				skipped++
				continue
			}

			var existing models.Product
			err := db.Where("slug = ?", product.Slug).First(&existing).Error
			switch {
			case err == nil:
				err = db.Model(&existing).Updates(map[string]interface{}{
					"title":       product.Title,
					"description": product.Description,
					"base_price":  product.BasePrice,
					"offer_price": product.OfferPrice,
					"stock":       product.Stock,
					"category_id": product.CategoryID,
				}).Error
				if err != nil {
					log.Warn("import: update product", zap.Int("row", i+1), zap.Error(err))
					skipped++
					continue
				}
				updated++
				touched = append(touched, product.Slug)
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := db.Create(&product).Error; err != nil {
					log.Warn("import: create product", zap.Int("row", i+1), zap.Error(err))
					skipped++
					continue
				}
				created++
			default:
				log.Warn("import: find product", zap.Int("row", i+1), zap.Error(err))
				skipped++
			}
		}

		InvalidateProducts(c.Request.Context(), store, log, touched...)
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": created,
			"updated_count": updated,
			"skipped_count": skipped,
		})
	}
}

// productFromRow reads the columns written by ExportProductsToExcel.
func productFromRow(get func(int) string, categories map[string]string) (models.Product, bool) {
	title := get(2)
	slug := Slugify(get(1))
	if slug == "" {
		slug = Slugify(title)
	}
	base, err1 := decimal.NewFromString(get(4))
	offer, err2 := decimal.NewFromString(get(5))
	if title == "" || slug == "" || err1 != nil || err2 != nil || validatePrices(base, offer) != "" {
		return models.Product{}, false
	}

	stock, _ := strconv.Atoi(get(6))
	if stock < 0 {
		stock = 0
	}

	p := models.Product{
		Slug:        slug,
		Title:       title,
		Description: get(3),
		BasePrice:   base,
		OfferPrice:  offer,
		Stock:       stock,
	}
	if id, ok := categories[get(7)]; ok {
		p.CategoryID = &id
	}
	return p, true
}
