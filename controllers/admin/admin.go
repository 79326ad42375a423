package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
)

// Orders in these states have been paid for.
var revenueStatuses = []models.OrderStatus{
	models.OrderStatusPaid,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
}

type lowStockProduct struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Stock int    `json:"stock"`
}

type Dashboard struct {
	Users     int64                        `json:"users"`
	Products  int64                        `json:"products"`
	Inquiries int64                        `json:"inquiries"`
	Orders    map[models.OrderStatus]int64 `json:"orders"`
	Revenue   decimal.Decimal              `json:"revenue"`
	LowStock  []lowStockProduct            `json:"lowStock"`
}

func loadDashboard(db *gorm.DB, lowStock int) (*Dashboard, error) {
	d := &Dashboard{Orders: map[models.OrderStatus]int64{}}

	if err := db.Model(&models.User{}).Count(&d.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Count(&d.Products).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Service{}).Count(&d.Inquiries).Error; err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).Select("status, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		d.Orders[row.Status] = row.Count
	}

	var revenue decimal.NullDecimal
	if err := db.Model(&models.Order{}).Select("SUM(amount)").
		Where("status IN ?", revenueStatuses).Row().Scan(&revenue); err != nil {
		return nil, err
	}
	d.Revenue = revenue.Decimal

	d.LowStock = []lowStockProduct{}
	if err := db.Model(&models.Product{}).Select("id, slug, title, stock").
		Where("stock <= ?", lowStock).Order("stock asc").Limit(20).
		Scan(&d.LowStock).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// GET /admin/dashboard?low_stock=5
func GetDashboard(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q struct {
			LowStock int `form:"low_stock,default=5" binding:"min=0"`
		}
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "low_stock must be a non-negative number"})
			return
		}

		d, err := loadDashboard(db, q.LowStock)
		if err != nil {
			log.Error("load admin dashboard", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
