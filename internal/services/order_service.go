// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/anenterprise-lab/pet-food-backend/internal/database"
	"github.com/anenterprise-lab/pet-food-backend/internal/models"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

// OrderService orchestrates checkout, picklist generation and the
// warehouse scan/pack workflow.
type OrderService struct {
	db    *gorm.DB
	locks *orderLockTable
}

// orderLockTable serializes mutations per order. Two operators racing to
// scan the last lines of the same order must not both claim the same item.
// Entries are reference counted and evicted once the last holder releases,
// so the table only holds orders with a scan in flight.
type orderLockTable struct {
	mtx   sync.Mutex
	locks map[uuid.UUID]*orderLock
}

type orderLock struct {
	mu   sync.Mutex
	refs int
}

func newOrderLockTable() *orderLockTable {
	return &orderLockTable{locks: make(map[uuid.UUID]*orderLock)}
}

func (t *orderLockTable) acquire(orderID uuid.UUID) *orderLock {
	t.mtx.Lock()
	lock, exists := t.locks[orderID]
	if !exists {
		lock = &orderLock{}
		t.locks[orderID] = lock
	}
	lock.refs++
	t.mtx.Unlock()

	lock.mu.Lock()
	return lock
}

func (t *orderLockTable) release(orderID uuid.UUID, lock *orderLock) {
	lock.mu.Unlock()

	t.mtx.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(t.locks, orderID)
	}
	t.mtx.Unlock()
}

type CartLine struct {
	ProductID  uuid.UUID `json:"productId" validate:"required"`
	CustomNote string    `json:"customNote,omitempty"`
}

type PlaceOrderRequest struct {
	CartItems  []CartLine `json:"cartItems" validate:"required,min=1,dive"`
	TotalPrice float64    `json:"totalPrice" validate:"min=0"`
}

type GeneratePicklistRequest struct {
	OrderIDs []uuid.UUID `json:"orderIds" validate:"required,min=1"`
}

type ScanItemRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
	Barcode string    `json:"barcode" validate:"required"`
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:    db,
		locks: newOrderLockTable(),
	}
}

// PlaceOrder checks stock for every cart line, decrements one unit per
// line and creates the order, all inside a single transaction so a
// failure never leaves stock reduced without a matching order record.
// Each line snapshots the product's name and price at this instant.
func (s *OrderService) PlaceOrder(userID uuid.UUID, req *PlaceOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Resolve every line before touching any stock.
		products := make([]models.Product, len(req.CartItems))
		for i, line := range req.CartItems {
			if err := tx.First(&products[i], "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "Product"}
				}
				return fmt.Errorf("database error: %w", err)
			}
		}

		// All-or-nothing stock check, naming the first offender.
		for i := range products {
			if products[i].StockLevel < 1 {
				return &OutOfStockError{ProductName: products[i].Name}
			}
		}

		// One unit per line. The guard catches carts repeating a product
		// more times than its stock covers, which the check above cannot
		// see, and keeps stock_level non-negative.
		for i := range products {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_level >= ?", products[i].ID, 1).
				UpdateColumn("stock_level", gorm.Expr("stock_level - ?", 1))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return &OutOfStockError{ProductName: products[i].Name}
			}
		}

		items := make([]models.OrderItem, len(req.CartItems))
		for i, line := range req.CartItems {
			items[i] = models.OrderItem{
				Position:   i,
				Name:       products[i].Name,
				Price:      products[i].Price,
				ProductID:  products[i].ID,
				CustomNote: line.CustomNote,
			}
		}

		order = &models.Order{
			UserID:     userID,
			Items:      items,
			TotalPrice: req.TotalPrice,
			Status:     models.OrderStatusPending,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Loyalty award is best-effort; a failure here never rolls back the
	// order that was just placed.
	if err := s.awardLoyalty(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Could not update loyalty points")
	}

	return order, nil
}

// awardLoyalty grants the fixed per-order points and, on the user's
// first-ever order, the Kindness Keeper badge. Re-granting the badge is
// a no-op.
func (s *OrderService) awardLoyalty(userID uuid.UUID) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		user.LoyaltyPoints += models.LoyaltyPointsPerOrder

		var orderCount int64
		if err := tx.Model(&models.Order{}).Where("user_id = ?", userID).Count(&orderCount).Error; err != nil {
			return fmt.Errorf("failed to count orders: %w", err)
		}

		if orderCount == 1 && !user.HasBadge(models.BadgeKindnessKeeper) {
			user.Badges = append(user.Badges, models.BadgeKindnessKeeper)
		}

		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		return nil
	})
}

// GeneratePicklist moves every named order to processing. This is an
// explicit admin override with no guard on the current status; ids that
// match no order are silently skipped. Returns the number of orders
// updated.
func (s *OrderService) GeneratePicklist(req *GeneratePicklistRequest) (int64, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return 0, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	result := s.db.Model(&models.Order{}).
		Where("id IN ?", req.OrderIDs).
		Update("status", models.OrderStatusProcessing)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update orders: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// ScanItem records one physical barcode scan against an order. The scan
// claims the first unscanned line matching the barcode's product, so an
// order holding two units of the same SKU needs two scans. Once every
// line is scanned the order flips to packed and every item receives a
// fresh validation token.
func (s *OrderService) ScanItem(req *ScanItemRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	lock := s.locks.acquire(req.OrderID)
	defer s.locks.release(req.OrderID, lock)

	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "barcode = ?", req.Barcode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "Product for this barcode"}
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "Order"}
			}
			return fmt.Errorf("database error: %w", err)
		}

		// First unscanned line matching the product wins.
		scanIdx := -1
		for i := range order.Items {
			if order.Items[i].ProductID == product.ID && !order.Items[i].Scanned {
				scanIdx = i
				break
			}
		}
		if scanIdx < 0 {
			return &InvalidStateError{Message: "Product not in this order or already scanned"}
		}

		order.Items[scanIdx].Scanned = true
		if err := tx.Model(&order.Items[scanIdx]).Update("scanned", true).Error; err != nil {
			return fmt.Errorf("failed to mark item scanned: %w", err)
		}

		if order.AllScanned() {
			order.Status = models.OrderStatusPacked
			if err := tx.Model(&order).Update("status", models.OrderStatusPacked).Error; err != nil {
				return fmt.Errorf("failed to update order status: %w", err)
			}

			// Every item gets its own token, not just the one scanned now.
			for i := range order.Items {
				order.Items[i].ValidationID = uuid.NewString()
				if err := tx.Model(&order.Items[i]).
					Update("validation_id", order.Items[i].ValidationID).Error; err != nil {
					return fmt.Errorf("failed to assign validation token: %w", err)
				}
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// GetOrder fetches one order with its user joined. Only the owner or an
// admin may read it.
func (s *OrderService) GetOrder(orderID, callerID uuid.UUID, isAdmin bool) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("User").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Order"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != callerID && !isAdmin {
		return nil, &AuthorizationError{Message: "Not authorized"}
	}

	return &order, nil
}

// GetMyOrders lists the caller's own orders.
func (s *OrderService) GetMyOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// GetAllOrders lists every order newest first with the owning user
// joined, for the admin fulfillment view.
func (s *OrderService) GetAllOrders(params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "updated_at", "status", "total_price"})
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("User").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}
