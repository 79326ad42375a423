package orderControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/validation"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var errInvalidStatus = errors.New("invalid order status")

// mapOrderStatus accepts any casing of a known status.
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch s := models.OrderStatus(strings.ToLower(strings.TrimSpace(status))); s {
	case models.OrderStatusPending,
		models.OrderStatusPaid,
		models.OrderStatusFailed,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return s, nil
	default:
		return "", errInvalidStatus
	}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("OrderItems").Preload("Payment")
}

// findOrder matches either the row id or the public order reference.
func findOrder(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := withDetails(db).
		Where("id = ? OR order_ref = ?", id, strings.ToUpper(id)).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var orders []models.Order
		if err := withDetails(db).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			log.Error("list user orders", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
func GetUserOrderHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		order, err := findOrder(db, c.Param("orderID"))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("get order", zap.String("order_id", c.Param("orderID")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		if order == nil || order.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders?status=paid
func GetAllOrdersHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := withDetails(db).Order("created_at DESC")
		if raw := c.Query("status"); raw != "" {
			status, err := mapOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			log.Error("list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("orderID"))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			log.Error("get order", zap.String("order_id", c.Param("orderID")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}
		status, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := findOrder(db, c.Param("orderID"))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			log.Error("find order", zap.String("order_id", c.Param("orderID")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		if err := db.Model(order).Update("status", status).Error; err != nil {
			log.Error("update order status", zap.String("order_id", order.OrderRef), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		log.Info("order status updated", zap.String("order_id", order.OrderRef), zap.String("status", string(status)))
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := findOrder(db, c.Param("orderID"))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			log.Error("find order", zap.String("order_id", c.Param("orderID")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		if err := DeleteOrder(db, order.ID); err != nil {
			log.Error("delete order", zap.String("order_id", order.OrderRef), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

// DeleteOrder removes an order with its items and payment record.
func DeleteOrder(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Order{}).Error
	})
}
