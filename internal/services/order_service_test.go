// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/anenterprise-lab/pet-food-backend/internal/models"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *OrderService
	user    *models.User
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewOrderService(s.db)
	s.user = createTestUser(s.T(), s.db, "Jamie", "jamie@example.com", false)
}

func (s *OrderServiceTestSuite) reloadProduct(id uuid.UUID) *models.Product {
	var product models.Product
	s.Require().NoError(s.db.First(&product, "id = ?", id).Error)
	return &product
}

func (s *OrderServiceTestSuite) reloadUser(id uuid.UUID) *models.User {
	var user models.User
	s.Require().NoError(s.db.First(&user, "id = ?", id).Error)
	return &user
}

func (s *OrderServiceTestSuite) reloadOrder(id uuid.UUID) *models.Order {
	var order models.Order
	s.Require().NoError(s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&order, "id = ?", id).Error)
	return &order
}

func (s *OrderServiceTestSuite) TestPlaceOrderCreatesPendingOrderAndDecrementsStock() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 3)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID, CustomNote: "Happy birthday, Rex!"}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	s.Equal(models.OrderStatusPending, order.Status)
	s.Equal(9.99, order.TotalPrice)
	s.Require().Len(order.Items, 1)
	s.Equal("Puppy Chow", order.Items[0].Name)
	s.Equal(9.99, order.Items[0].Price)
	s.Equal(product.ID, order.Items[0].ProductID)
	s.Equal("Happy birthday, Rex!", order.Items[0].CustomNote)
	s.False(order.Items[0].Scanned)
	s.Empty(order.Items[0].ValidationID)

	s.Equal(2, s.reloadProduct(product.ID).StockLevel)
	s.Equal(models.LoyaltyPointsPerOrder, s.reloadUser(s.user.ID).LoyaltyPoints)
}

func (s *OrderServiceTestSuite) TestPlaceOrderOutOfStockIsAllOrNothing() {
	inStock := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 5)
	outOfStock := createTestProduct(s.T(), s.db, "SKU-2", "Senior Blend", "222", 14.50, 0)

	_, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems: []CartLine{
			{ProductID: inStock.ID},
			{ProductID: outOfStock.ID},
		},
		TotalPrice: 24.49,
	})

	var stockErr *OutOfStockError
	s.Require().ErrorAs(err, &stockErr)
	s.Equal("Senior Blend", stockErr.ProductName)

	// Nothing was committed.
	s.Equal(5, s.reloadProduct(inStock.ID).StockLevel)
	s.Equal(0, s.reloadProduct(outOfStock.ID).StockLevel)

	var orderCount int64
	s.Require().NoError(s.db.Model(&models.Order{}).Count(&orderCount).Error)
	s.Zero(orderCount)
	s.Zero(s.reloadUser(s.user.ID).LoyaltyPoints)
}

func (s *OrderServiceTestSuite) TestPlaceOrderUnknownProduct() {
	_, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: uuid.New()}},
		TotalPrice: 5,
	})

	var notFound *NotFoundError
	s.Require().ErrorAs(err, &notFound)
}

func (s *OrderServiceTestSuite) TestPlaceOrderEmptyCart() {
	_, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{TotalPrice: 0})

	var validation *ValidationError
	s.Require().ErrorAs(err, &validation)
}

func (s *OrderServiceTestSuite) TestPlaceOrderTwinProductsBothDecrement() {
	left := createTestProduct(s.T(), s.db, "SKU-L", "Kitten Bites", "333", 4.25, 1)
	right := createTestProduct(s.T(), s.db, "SKU-R", "Kitten Bites", "444", 4.25, 1)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems: []CartLine{
			{ProductID: left.ID},
			{ProductID: right.ID},
		},
		TotalPrice: 8.50,
	})
	s.Require().NoError(err)
	s.Len(order.Items, 2)

	s.Equal(0, s.reloadProduct(left.ID).StockLevel)
	s.Equal(0, s.reloadProduct(right.ID).StockLevel)
}

func (s *OrderServiceTestSuite) TestPlaceOrderDuplicateLinesCannotOverdrawStock() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 1)

	// Both lines pass the snapshot check at stock 1; the guarded
	// decrement must refuse the second line and roll everything back.
	_, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems: []CartLine{
			{ProductID: product.ID},
			{ProductID: product.ID},
		},
		TotalPrice: 19.98,
	})

	var stockErr *OutOfStockError
	s.Require().ErrorAs(err, &stockErr)
	s.Equal("Puppy Chow", stockErr.ProductName)

	s.Equal(1, s.reloadProduct(product.ID).StockLevel)

	var orderCount int64
	s.Require().NoError(s.db.Model(&models.Order{}).Count(&orderCount).Error)
	s.Zero(orderCount)
	s.Zero(s.reloadUser(s.user.ID).LoyaltyPoints)
}

func (s *OrderServiceTestSuite) TestPlaceOrderDuplicateLinesDrainStockToZero() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 2)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems: []CartLine{
			{ProductID: product.ID},
			{ProductID: product.ID},
		},
		TotalPrice: 19.98,
	})
	s.Require().NoError(err)
	s.Len(order.Items, 2)

	s.Equal(0, s.reloadProduct(product.ID).StockLevel)
}

func (s *OrderServiceTestSuite) TestPlaceOrderSnapshotsSurviveProductEdits() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 3)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{"name": "Renamed", "price": 19.99}).Error)

	reloaded := s.reloadOrder(order.ID)
	s.Equal("Puppy Chow", reloaded.Items[0].Name)
	s.Equal(9.99, reloaded.Items[0].Price)
}

func (s *OrderServiceTestSuite) TestLoyaltyBadgeGrantedExactlyOnce() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 10)

	_, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	user := s.reloadUser(s.user.ID)
	s.Equal(models.LoyaltyPointsPerOrder, user.LoyaltyPoints)
	s.True(user.HasBadge(models.BadgeKindnessKeeper))

	_, err = s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	user = s.reloadUser(s.user.ID)
	s.Equal(2*models.LoyaltyPointsPerOrder, user.LoyaltyPoints)

	badgeCount := 0
	for _, badge := range user.Badges {
		if badge == models.BadgeKindnessKeeper {
			badgeCount++
		}
	}
	s.Equal(1, badgeCount)
}

func (s *OrderServiceTestSuite) TestGeneratePicklistSkipsUnknownIDs() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 3)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	updated, err := s.service.GeneratePicklist(&GeneratePicklistRequest{
		OrderIDs: []uuid.UUID{order.ID, uuid.New()},
	})
	s.Require().NoError(err)
	s.Equal(int64(1), updated)

	s.Equal(models.OrderStatusProcessing, s.reloadOrder(order.ID).Status)
}

func (s *OrderServiceTestSuite) TestScanItemConsumesOneLinePerScan() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 2)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems: []CartLine{
			{ProductID: product.ID},
			{ProductID: product.ID},
		},
		TotalPrice: 19.98,
	})
	s.Require().NoError(err)

	// First scan claims the first unscanned line only.
	scanned, err := s.service.ScanItem(&ScanItemRequest{OrderID: order.ID, Barcode: "111"})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusPending, scanned.Status)
	s.True(scanned.Items[0].Scanned)
	s.False(scanned.Items[1].Scanned)
	s.Empty(scanned.Items[0].ValidationID)

	// Second scan claims the remaining line and packs the order,
	// without the order ever passing through processing.
	scanned, err = s.service.ScanItem(&ScanItemRequest{OrderID: order.ID, Barcode: "111"})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusPacked, scanned.Status)
	s.True(scanned.Items[0].Scanned)
	s.True(scanned.Items[1].Scanned)

	// Every item carries a fresh unique validation token.
	s.NotEmpty(scanned.Items[0].ValidationID)
	s.NotEmpty(scanned.Items[1].ValidationID)
	s.NotEqual(scanned.Items[0].ValidationID, scanned.Items[1].ValidationID)

	reloaded := s.reloadOrder(order.ID)
	s.Equal(models.OrderStatusPacked, reloaded.Status)
	s.NotEmpty(reloaded.Items[0].ValidationID)
	s.NotEmpty(reloaded.Items[1].ValidationID)
}

func (s *OrderServiceTestSuite) TestScanItemUnknownBarcode() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 1)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	_, err = s.service.ScanItem(&ScanItemRequest{OrderID: order.ID, Barcode: "nope"})

	var notFound *NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal(models.OrderStatusPending, s.reloadOrder(order.ID).Status)
}

func (s *OrderServiceTestSuite) TestScanItemProductNotInOrder() {
	ordered := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 1)
	other := createTestProduct(s.T(), s.db, "SKU-2", "Senior Blend", "222", 14.50, 1)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: ordered.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	_, err = s.service.ScanItem(&ScanItemRequest{OrderID: order.ID, Barcode: other.Barcode})

	var invalidState *InvalidStateError
	s.Require().ErrorAs(err, &invalidState)

	reloaded := s.reloadOrder(order.ID)
	s.Equal(models.OrderStatusPending, reloaded.Status)
	s.False(reloaded.Items[0].Scanned)
}

func (s *OrderServiceTestSuite) TestScanItemAllLinesAlreadyScanned() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 1)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	_, err = s.service.ScanItem(&ScanItemRequest{OrderID: order.ID, Barcode: "111"})
	s.Require().NoError(err)

	_, err = s.service.ScanItem(&ScanItemRequest{OrderID: order.ID, Barcode: "111"})

	var invalidState *InvalidStateError
	s.Require().ErrorAs(err, &invalidState)
	s.Equal(models.OrderStatusPacked, s.reloadOrder(order.ID).Status)
}

func (s *OrderServiceTestSuite) TestScanItemEvictsOrderLockAfterUse() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 1)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	_, err = s.service.ScanItem(&ScanItemRequest{OrderID: order.ID, Barcode: "111"})
	s.Require().NoError(err)

	s.service.locks.mtx.Lock()
	remaining := len(s.service.locks.locks)
	s.service.locks.mtx.Unlock()
	s.Zero(remaining)
}

func (s *OrderServiceTestSuite) TestScanItemUnknownOrder() {
	createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 1)

	_, err := s.service.ScanItem(&ScanItemRequest{OrderID: uuid.New(), Barcode: "111"})

	var notFound *NotFoundError
	s.Require().ErrorAs(err, &notFound)
}

func (s *OrderServiceTestSuite) TestGetOrderOwnerOrAdminOnly() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 1)
	stranger := createTestUser(s.T(), s.db, "Alex", "alex@example.com", false)
	admin := createTestUser(s.T(), s.db, "Ops", "ops@example.com", true)

	order, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	got, err := s.service.GetOrder(order.ID, s.user.ID, false)
	s.Require().NoError(err)
	s.Equal(order.ID, got.ID)
	s.Require().NotNil(got.User)
	s.Equal("Jamie", got.User.Name)

	_, err = s.service.GetOrder(order.ID, stranger.ID, false)
	var authz *AuthorizationError
	s.Require().ErrorAs(err, &authz)

	_, err = s.service.GetOrder(order.ID, admin.ID, true)
	s.Require().NoError(err)
}

func (s *OrderServiceTestSuite) TestGetMyOrdersScopedToCaller() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 5)
	other := createTestUser(s.T(), s.db, "Alex", "alex@example.com", false)

	_, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	_, err = s.service.PlaceOrder(other.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	mine, err := s.service.GetMyOrders(s.user.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(s.user.ID, mine[0].UserID)
}

func (s *OrderServiceTestSuite) TestGetAllOrdersNewestFirstWithUser() {
	product := createTestProduct(s.T(), s.db, "SKU-1", "Puppy Chow", "111", 9.99, 5)

	first, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	second, err := s.service.PlaceOrder(s.user.ID, &PlaceOrderRequest{
		CartItems:  []CartLine{{ProductID: product.ID}},
		TotalPrice: 9.99,
	})
	s.Require().NoError(err)

	// Force distinct creation timestamps for a deterministic sort.
	s.Require().NoError(s.db.Model(&models.Order{}).Where("id = ?", first.ID).
		UpdateColumn("created_at", gorm.Expr("datetime('now', '-1 hour')")).Error)

	orders, total, err := s.service.GetAllOrders(utils.PaginationParams{
		Page: 1, Limit: 20, Sort: "created_at", Order: "desc",
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(orders, 2)
	s.Equal(second.ID, orders[0].ID)
	s.Require().NotNil(orders[0].User)
	s.Equal("jamie@example.com", orders[0].User.Email)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
