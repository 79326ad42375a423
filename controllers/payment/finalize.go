package paymentControllers

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/payment/razorpay"
)

// OrderBroadcaster is told about every order that becomes paid.
type OrderBroadcaster interface {
	Broadcast(order models.Order)
}

var errOrderNotFound = errors.New("order not found")

// finalizeOrder marks the order paid, takes its items out of stock, records
// the payment and empties the buyer's cart. paid is false when the order
// had already been finalized, which makes repeated and concurrent calls
// harmless: only the caller that moves the status to paid does the rest.
func finalizeOrder(ctx context.Context, db *gorm.DB, store cache.Cache, ref string, p *razorpay.Payment, log *zap.Logger) (order *models.Order, paid bool, err error) {
	var touched []string
	err = db.Transaction(func(tx *gorm.DB) error {
		order = &models.Order{}
		err := tx.Preload("OrderItems").Where("order_ref = ?", ref).First(order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errOrderNotFound
		}
		if err != nil {
			return errors.Wrapf(err, "find order %s", ref)
		}

		// A failed order can still be captured by a later retry.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", order.ID, []models.OrderStatus{models.OrderStatusPending, models.OrderStatusFailed}).
			Update("status", models.OrderStatusPaid)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "mark order %s paid", ref)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		order.Status = models.OrderStatusPaid
		touched = decrementStock(tx, order, log)

		payment := models.Payment{
			OrderID:      order.ID,
			RzrOrderID:   p.OrderID,
			RzrPaymentID: p.ID,
			Method:       razorpay.MethodLabel(p),
			Via:          razorpay.Via(p),
			Amount:       decimal.New(p.Amount, -2),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return errors.Wrapf(err, "record payment %s", p.ID)
		}
		order.Payment = &payment

		if err := cartControllers.ClearUserCart(tx, order.UserID); err != nil {
			return err
		}
		paid = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	productcontroller.InvalidateProducts(ctx, store, log, touched...)
	return order, paid, nil
}

// decrementStock never lets one bad line abort the payment: a failed update
// is rolled back to its savepoint, logged and skipped. It returns the slugs
// of the products whose stock changed.
func decrementStock(tx *gorm.DB, order *models.Order, log *zap.Logger) []string {
	var ids []string
	for i, item := range order.OrderItems {
		if item.ProductID == nil {
			continue
		}
		sp := fmt.Sprintf("stock_%d", i)
		if err := tx.SavePoint(sp).Error; err != nil {
			log.Warn("stock savepoint", zap.String("order_id", order.OrderRef), zap.Error(err))
			continue
		}
		res := tx.Model(&models.Product{}).Where("id = ?", *item.ProductID).
			UpdateColumn("stock", gorm.Expr("CASE WHEN stock >= ? THEN stock - ? ELSE 0 END", item.Quantity, item.Quantity))
		if res.Error != nil {
			tx.RollbackTo(sp)
			log.Warn("decrement stock failed", zap.String("order_id", order.OrderRef),
				zap.String("product_id", *item.ProductID), zap.Error(res.Error))
			continue
		}
		if res.RowsAffected == 0 {
			log.Warn("ordered product no longer exists", zap.String("order_id", order.OrderRef),
				zap.String("product_id", *item.ProductID))
			continue
		}
		ids = append(ids, *item.ProductID)
	}
	if len(ids) == 0 {
		return nil
	}

	var slugs []string
	if err := tx.Model(&models.Product{}).Where("id IN ?", ids).Pluck("slug", &slugs).Error; err != nil {
		log.Warn("look up stocked slugs", zap.String("order_id", order.OrderRef), zap.Error(err))
	}
	return slugs
}

// failOrder applies a gateway failure to a still-pending order.
func failOrder(db *gorm.DB, ref string) (bool, error) {
	res := db.Model(&models.Order{}).
		Where("order_ref = ? AND status = ?", ref, models.OrderStatusPending).
		Update("status", models.OrderStatusFailed)
	return res.RowsAffected > 0, errors.Wrapf(res.Error, "mark order %s failed", ref)
}

// dropPendingOrder deletes an unpaid order together with its items.
func dropPendingOrder(db *gorm.DB, ref string) error {
	var order models.Order
	err := db.Where("order_ref = ? AND status = ?", ref, models.OrderStatusPending).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "find pending order %s", ref)
	}
	return errors.Wrapf(orderControllers.DeleteOrder(db, order.ID), "delete order %s", ref)
}
