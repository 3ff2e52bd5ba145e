package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/constants"
	"github.com/linkmart/internal/models"
	"github.com/linkmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Brand{}, &models.Product{}, &models.ProductSEO{},
		&models.Order{}, &models.OrderItem{}, &models.Customer{},
	); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		nil,
		nil,
		config.StoreConfig{Currency: "USD", ShippingFlatFee: 5, TaxRate: 0.1},
	)
	return svc, db
}

func createDirectProduct(t *testing.T, db *gorm.DB, slug string, price float64, stock *int) *models.Product {
	t.Helper()
	category := models.Category{Name: "Order Test", Slug: "order-cat-" + slug, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:    category.ID,
		Name:          "Product " + slug,
		Slug:          slug,
		Price:         models.NewMoneyFromFloat(price),
		PurchaseType:  constants.PurchaseTypeDirect,
		StockQuantity: stock,
		MainImage:     "https://cdn.example.com/" + slug + ".jpg",
		IsActive:      true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestGenerateOrderNoFormat(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	orderNo, err := svc.GenerateOrderNo(now)
	if err != nil {
		t.Fatalf("generate order number failed: %v", err)
	}
	pattern := regexp.MustCompile(`^LM20260314150926\d{6}$`)
	if !pattern.MatchString(orderNo) {
		t.Fatalf("order number format mismatch: %s", orderNo)
	}
}

func TestOrderCreateSnapshotAndStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	stock := 10
	product := createDirectProduct(t, db, "order-snapshot-product", 49.99, &stock)

	order, err := svc.Create(OrderInput{
		CustomerEmail:   "Buyer@Example.com",
		CustomerName:    "Buyer",
		ShippingAddress: "1 Main St",
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.CustomerEmail != "buyer@example.com" {
		t.Fatalf("email should be lowercased, got %s", order.CustomerEmail)
	}
	if order.Subtotal.String() != "99.98" {
		t.Fatalf("subtotal want 99.98 got %s", order.Subtotal.String())
	}
	// 99.98 + 5.00 运费 + 10.00 税
	if order.TotalAmount.String() != "114.98" {
		t.Fatalf("total want 114.98 got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != product.Name {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	var reloadedProduct models.Product
	if err := db.First(&reloadedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloadedProduct.StockQuantity == nil || *reloadedProduct.StockQuantity != 8 {
		t.Fatalf("stock want 8 got %+v", reloadedProduct.StockQuantity)
	}
	if reloadedProduct.SalesCount != 2 {
		t.Fatalf("sales count want 2 got %d", reloadedProduct.SalesCount)
	}

	// 商品改名改价后，订单项快照保持下单时的值
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{"name": "Renamed", "price": "999.00"}).Error; err != nil {
		t.Fatalf("mutate product failed: %v", err)
	}
	var item models.OrderItem
	if err := db.Where("order_id = ?", order.ID).First(&item).Error; err != nil {
		t.Fatalf("reload order item failed: %v", err)
	}
	if item.ProductName != product.Name {
		t.Fatalf("snapshot name want %s got %s", product.Name, item.ProductName)
	}
	if item.UnitPrice.String() != "49.99" {
		t.Fatalf("snapshot price want 49.99 got %s", item.UnitPrice.String())
	}
}

func TestOrderCreateOutOfStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	stock := 1
	product := createDirectProduct(t, db, "order-oos-product", 9.99, &stock)

	_, err := svc.Create(OrderInput{
		CustomerEmail: "oos@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("over-quantity want ErrOutOfStock got %v", err)
	}

	// 失败的下单不能扣库存
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity == nil || *reloaded.StockQuantity != 1 {
		t.Fatalf("stock should stay 1, got %+v", reloaded.StockQuantity)
	}
}

func TestOrderCreateUntrackedStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createDirectProduct(t, db, "order-untracked-product", 3.50, nil)

	order, err := svc.Create(OrderInput{
		CustomerEmail: "untracked@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 500}},
	})
	if err != nil {
		t.Fatalf("untracked stock order failed: %v", err)
	}
	if order.Subtotal.String() != "1750.00" {
		t.Fatalf("subtotal want 1750.00 got %s", order.Subtotal.String())
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != nil {
		t.Fatalf("untracked product should keep nil stock, got %+v", reloaded.StockQuantity)
	}
}

func TestOrderCreateAffiliateRejected(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createDirectProduct(t, db, "order-affiliate-product", 19.99, nil)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"purchase_type": constants.PurchaseTypeAffiliate,
			"affiliate_url": "https://partner.example.com/p/1",
		}).Error; err != nil {
		t.Fatalf("switch purchase type failed: %v", err)
	}

	_, err := svc.Create(OrderInput{
		CustomerEmail: "affiliate@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrAffiliateProduct) {
		t.Fatalf("affiliate product want ErrAffiliateProduct got %v", err)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	if _, err := svc.Create(OrderInput{CustomerEmail: "a@b.c"}); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("empty items want ErrEmptyOrder got %v", err)
	}
	if _, err := svc.Create(OrderInput{
		CustomerEmail: "not-an-email",
		Items:         []OrderItemInput{{ProductID: 1, Quantity: 1}},
	}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, err := svc.Create(OrderInput{
		CustomerEmail: "a@b.c",
		Items:         []OrderItemInput{{ProductID: 1, Quantity: 0}},
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero quantity want ErrInvalidInput got %v", err)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusPending, false},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing, false},
	}
	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("transition %s -> %s want %v got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderUpdateStatusInvalidTransition(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createDirectProduct(t, db, "order-status-product", 10, nil)

	order, err := svc.Create(OrderInput{
		CustomerEmail: "status@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, OrderStatusInput{Status: constants.OrderStatusDelivered}); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("pending -> delivered want ErrStatusInvalid got %v", err)
	}
	updated, err := svc.UpdateStatus(order.ID, OrderStatusInput{Status: constants.OrderStatusProcessing})
	if err != nil {
		t.Fatalf("pending -> processing failed: %v", err)
	}
	shipped, err := svc.UpdateStatus(updated.ID, OrderStatusInput{
		Status:         constants.OrderStatusShipped,
		TrackingNumber: "TRK-1",
		Carrier:        "UPS",
	})
	if err != nil {
		t.Fatalf("processing -> shipped failed: %v", err)
	}
	if shipped.TrackingNumber != "TRK-1" || shipped.ShippedAt == nil {
		t.Fatalf("shipping fields not recorded: %+v", shipped)
	}
}

func TestOrderMarkPaidIdempotent(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createDirectProduct(t, db, "order-paid-product", 25, nil)

	order, err := svc.Create(OrderInput{
		CustomerEmail: "paid@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	paidAt := time.Now()
	paid, err := svc.MarkPaid(order.ID, paidAt)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.PaymentStatus != constants.OrderPaymentPaid || paid.PaidAt == nil {
		t.Fatalf("payment fields not set: %+v", paid)
	}
	if paid.Status != constants.OrderStatusProcessing {
		t.Fatalf("paid order should move to processing, got %s", paid.Status)
	}

	again, err := svc.MarkPaid(order.ID, paidAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("second mark paid failed: %v", err)
	}
	// 重复回调不得覆盖首次支付时间
	if again.PaidAt == nil || again.PaidAt.After(paidAt.Add(time.Minute)) {
		t.Fatalf("mark paid should be idempotent, paid_at moved to %v", again.PaidAt)
	}
}

func TestOrderCancelRestocks(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	stock := 5
	product := createDirectProduct(t, db, "order-cancel-product", 12, &stock)

	order, err := svc.Create(OrderInput{
		CustomerEmail: "cancel@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	cancelled, err := svc.Cancel(order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("cancel fields not set: %+v", cancelled)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity == nil || *reloaded.StockQuantity != 5 {
		t.Fatalf("stock should be restored to 5, got %+v", reloaded.StockQuantity)
	}

	if _, err := svc.Cancel(order.ID); !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("cancel twice want ErrOrderNotCancelable got %v", err)
	}
}

func TestOrderLookupForGuestAndCustomer(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := createDirectProduct(t, db, "order-lookup-product", 7, nil)
	customerID := uint(4242)

	order, err := svc.Create(OrderInput{
		CustomerID:    &customerID,
		CustomerEmail: "lookup@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := svc.LookupForGuest(order.OrderNo, "lookup@example.com")
	if err != nil {
		t.Fatalf("guest lookup failed: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("guest lookup want order %d got %d", order.ID, got.ID)
	}
	if _, err := svc.LookupForGuest(order.OrderNo, "other@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("guest lookup with wrong email want ErrNotFound got %v", err)
	}

	if _, err := svc.LookupForCustomer(order.OrderNo, customerID); err != nil {
		t.Fatalf("customer lookup failed: %v", err)
	}
	if _, err := svc.LookupForCustomer(order.OrderNo, customerID+1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("customer lookup with wrong owner want ErrNotFound got %v", err)
	}
}

func TestResetSalesDataPurgesEverything(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	if err := db.AutoMigrate(&models.Payment{}); err != nil {
		t.Fatalf("migrate payments failed: %v", err)
	}

	stock := 5
	product := createDirectProduct(t, db, "order-reset-sales-product", 19.99, &stock)
	order, err := svc.Create(OrderInput{
		CustomerEmail: "reset-sales@example.com",
		Items:         []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	orderID := order.ID
	payment := models.Payment{
		ProviderIntentID: "pi_reset_sales_1",
		OrderID:          &orderID,
		Amount:           models.NewMoneyFromFloat(19.99),
		Currency:         "USD",
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("create payment failed: %v", err)
	}

	removed, err := svc.ResetSalesData()
	if err != nil {
		t.Fatalf("reset sales data failed: %v", err)
	}
	if removed < 1 {
		t.Fatalf("removed want >=1 got %d", removed)
	}

	var orderCount, itemCount, paymentCount int64
	if err := db.Unscoped().Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if err := db.Model(&models.OrderItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if err := db.Model(&models.Payment{}).Count(&paymentCount).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if orderCount != 0 || itemCount != 0 || paymentCount != 0 {
		t.Fatalf("sales tables should be empty, got orders=%d items=%d payments=%d", orderCount, itemCount, paymentCount)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.SalesCount != 0 {
		t.Fatalf("sales count should reset to 0, got %d", reloaded.SalesCount)
	}
	if reloaded.StockQuantity == nil || *reloaded.StockQuantity != 4 {
		t.Fatalf("reset must not restock, want 4 got %+v", reloaded.StockQuantity)
	}
}
