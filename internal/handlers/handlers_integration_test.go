package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"duka/internal/handlers"
	"duka/internal/middleware"
	"duka/internal/models"
	"duka/internal/mpesa"
	"duka/internal/repositories"
	"duka/internal/services"
)

// stubGateway satisfies services.PaymentGateway without reaching the network.
type stubGateway struct {
	resp  *mpesa.STKPushResponse
	err   error
	calls int32
}

func (g *stubGateway) STKPush(ctx context.Context, phone string, amount int, accountRef, description string) (*mpesa.STKPushResponse, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

var dbCounter int64

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	gateway *stubGateway
}

// setupTestApp wires the full application against a fresh in-memory SQLite
// database, mirroring the wiring in main.go.
func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.SellerProfile{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.MpesaTransaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	gateway := &stubGateway{
		resp: &mpesa.STKPushResponse{
			MerchantRequestID: "merch-1",
			CheckoutRequestID: "ws_CO_test",
			ResponseCode:      "0",
		},
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	catalogRepo := repositories.NewGORMCatalogRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	paymentRepo := repositories.NewGORMPaymentRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	catalogService := services.NewCatalogService(productRepo, catalogRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil)
	reorderService := services.NewReorderService(orderRepo, productRepo, cartRepo)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, gateway, nil)
	sellerService := services.NewSellerService(userRepo, productRepo, orderRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	catalogHandler.RegisterRoutes(apiV1)
	handlers.NewPaymentHandler(paymentService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	catalogHandler.RegisterProtectedRoutes(protected)
	handlers.NewCartHandler(cartService).RegisterRoutes(protected)
	handlers.NewWishlistHandler(wishlistService).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService, paymentService, reorderService).RegisterRoutes(protected)

	seller := apiV1.Group("/seller", middleware.AuthRequired(authService), middleware.SellerRequired())
	handlers.NewSellerHandler(sellerService).RegisterRoutes(seller)

	// Every product needs a category to live in
	db.Create(&models.Category{ID: "cat-1", Name: "Shoes", Slug: "shoes"})

	return &testEnv{app: app, db: db, gateway: gateway}
}

// request performs a JSON request against the test app and decodes the
// response body.
func (e *testEnv) request(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal request payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	result := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response from %s %s: %v", method, path, err)
	}
	return resp.StatusCode, result
}

// registerAndLogin creates an account and returns its bearer token.
func (e *testEnv) registerAndLogin(t *testing.T, username, role string) string {
	t.Helper()

	status, _ := e.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, status)

	status, body := e.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// createProduct adds a product through the seller API and returns its id
// and slug.
func (e *testEnv) createProduct(t *testing.T, sellerToken, name string, price float64, discount *float64, stock int) (id, slug string) {
	t.Helper()

	payload := map[string]interface{}{
		"name":        name,
		"description": "Test product",
		"price":       price,
		"category_id": "cat-1",
		"stock":       stock,
		"is_active":   true,
	}
	if discount != nil {
		payload["discount_price"] = *discount
	}

	status, body := e.request(t, http.MethodPost, "/api/v1/seller/products", sellerToken, payload)
	assert.Equal(t, http.StatusCreated, status)

	product, _ := body["product"].(map[string]interface{})
	id, _ = product["id"].(string)
	slug, _ = product["slug"].(string)
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, slug)
	return id, slug
}

func TestRegisterLoginAndDuplicateUsername(t *testing.T) {
	env := setupTestApp(t)

	token := env.registerAndLogin(t, "alice", "customer")
	assert.NotEmpty(t, token)

	status, _ := env.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSellerRoutesRequireSellerRole(t *testing.T) {
	env := setupTestApp(t)

	customerToken := env.registerAndLogin(t, "bob", "customer")
	status, _ := env.request(t, http.MethodGet, "/api/v1/seller/dashboard", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	sellerToken := env.registerAndLogin(t, "wanjiku", "seller")
	status, body := env.request(t, http.MethodGet, "/api/v1/seller/dashboard", sellerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	profile, _ := body["profile"].(map[string]interface{})
	assert.Equal(t, "wanjiku's Store", profile["store_name"])
}

func TestSellerProductPayloadValidation(t *testing.T) {
	env := setupTestApp(t)
	sellerToken := env.registerAndLogin(t, "seller9", "seller")

	// A payload carrying only the product fields passes validation
	status, body := env.request(t, http.MethodPost, "/api/v1/seller/products", sellerToken, map[string]interface{}{
		"name":        "Kitenge Shirt",
		"description": "Hand-printed cotton",
		"price":       2200.0,
		"category_id": "cat-1",
		"stock":       8,
	})
	assert.Equal(t, http.StatusCreated, status)
	product, _ := body["product"].(map[string]interface{})
	assert.NotEmpty(t, product["slug"])

	// A bad payload is rejected for its own fields, not for the empty
	// seller and category associations
	status, body = env.request(t, http.MethodPost, "/api/v1/seller/products", sellerToken, map[string]interface{}{
		"name":        "ab",
		"category_id": "cat-1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	errs, _ := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "Name")
	assert.Contains(t, errs, "Price")
	assert.NotContains(t, errs, "StoreName")
	assert.NotContains(t, errs, "Username")
}

func TestCartTotalsAndDuplicateAdd(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller1", "seller")
	discount := 1000.0
	sneakersID, _ := env.createProduct(t, sellerToken, "Running Sneakers", 1200, &discount, 10)
	socksID, _ := env.createProduct(t, sellerToken, "Wool Socks", 500, nil, 50)

	token := env.registerAndLogin(t, "buyer1", "customer")

	status, _ := env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": sneakersID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, status)

	// Adding the same product again increments the line instead of
	// duplicating it
	status, _ = env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": sneakersID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": socksID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, status)

	status, cart := env.request(t, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, status)

	items, _ := cart["items"].([]interface{})
	assert.Len(t, items, 2)
	// 2 x 1000 (discounted) + 1 x 500 = 2500, plus the flat delivery fee
	assert.Equal(t, 2500.0, cart["subtotal"])
	assert.Equal(t, 200.0, cart["shipping_fee"])
	assert.Equal(t, 2700.0, cart["total"])

	// An unknown product is rejected
	status, _ = env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": "no-such-product",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCheckoutAndCancelFlow(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller2", "seller")
	productID, _ := env.createProduct(t, sellerToken, "Leather Boots", 3000, nil, 5)

	token := env.registerAndLogin(t, "buyer2", "customer")

	// Checkout with an empty cart fails up front
	status, _ := env.request(t, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping_address": "123 Biashara Street",
		"phone":            "254712345678",
		"payment_method":   "cod",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, status)

	status, body := env.request(t, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping_address": "123 Biashara Street",
		"phone":            "254712345678",
		"payment_method":   "cod",
	})
	assert.Equal(t, http.StatusCreated, status)

	order, _ := body["order"].(map[string]interface{})
	orderID, _ := order["id"].(string)
	assert.NotEmpty(t, orderID)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, 3200.0, order["total"])

	// The cart was emptied by the checkout
	status, cart := env.request(t, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, cart["total"])

	// Another user cannot see or cancel the order
	otherToken := env.registerAndLogin(t, "buyer3", "customer")
	status, _ = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.request(t, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	order, _ = body["order"].(map[string]interface{})
	assert.Equal(t, "cancelled", order["status"])

	// A cancelled order cannot be cancelled again
	status, _ = env.request(t, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestSellerOrderLifecycle(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller3", "seller")
	productID, _ := env.createProduct(t, sellerToken, "Canvas Bag", 800, nil, 20)

	token := env.registerAndLogin(t, "buyer4", "customer")
	env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
	})
	status, body := env.request(t, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping_address": "456 Moi Avenue",
		"phone":            "254700000001",
		"payment_method":   "cod",
	})
	assert.Equal(t, http.StatusCreated, status)
	order, _ := body["order"].(map[string]interface{})
	orderID, _ := order["id"].(string)

	// The order shows up on the seller side
	status, body = env.request(t, http.MethodGet, "/api/v1/seller/orders", sellerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["count"])

	// Seller walks the order through the lifecycle
	for _, next := range []string{"processing", "shipped", "delivered"} {
		status, _ = env.request(t, http.MethodPatch, "/api/v1/seller/orders/"+orderID+"/status", sellerToken, map[string]interface{}{
			"status": next,
		})
		assert.Equal(t, http.StatusOK, status, "transition to %s", next)
	}

	// Backwards transitions are rejected
	status, _ = env.request(t, http.MethodPatch, "/api/v1/seller/orders/"+orderID+"/status", sellerToken, map[string]interface{}{
		"status": "shipped",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Tracking reflects the delivered state
	status, body = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID+"/track", token, nil)
	assert.Equal(t, http.StatusOK, status)
	tracking, _ := body["tracking"].(map[string]interface{})
	assert.Equal(t, 4.0, tracking["current_step"])

	// A foreign seller sees nothing to update
	otherSeller := env.registerAndLogin(t, "seller4", "seller")
	status, _ = env.request(t, http.MethodPatch, "/api/v1/seller/orders/"+orderID+"/status", otherSeller, map[string]interface{}{
		"status": "processing",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func mpesaCallbackBody(checkoutRequestID string, resultCode int) map[string]interface{} {
	callback := map[string]interface{}{
		"MerchantRequestID": "merch-1",
		"CheckoutRequestID": checkoutRequestID,
		"ResultCode":        resultCode,
		"ResultDesc":        "Result",
	}
	if resultCode == 0 {
		callback["CallbackMetadata"] = map[string]interface{}{
			"Item": []map[string]interface{}{
				{"Name": "Amount", "Value": 3200},
				{"Name": "MpesaReceiptNumber", "Value": "SAK1XYZ9QW"},
				{"Name": "TransactionDate", "Value": 20240115103245},
			},
		}
	}
	return map[string]interface{}{
		"Body": map[string]interface{}{"stkCallback": callback},
	}
}

func TestMpesaPaymentFlow(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller5", "seller")
	productID, _ := env.createProduct(t, sellerToken, "Safari Hat", 3000, nil, 5)

	token := env.registerAndLogin(t, "buyer5", "customer")
	env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
	})

	status, body := env.request(t, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping_address": "789 Kimathi Street",
		"phone":            "254712345678",
		"payment_method":   "mpesa",
	})
	assert.Equal(t, http.StatusCreated, status)

	order, _ := body["order"].(map[string]interface{})
	orderID, _ := order["id"].(string)

	payment, _ := body["payment"].(map[string]interface{})
	assert.Equal(t, true, payment["initiated"])
	assert.Equal(t, "ws_CO_test", payment["checkout_request_id"])
	assert.Equal(t, int32(1), env.gateway.calls)

	// The gateway confirms the charge asynchronously
	status, ack := env.request(t, http.MethodPost, "/api/v1/payments/mpesa/callback", "",
		mpesaCallbackBody("ws_CO_test", 0))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, ack["ResultCode"])
	assert.Equal(t, "Success", ack["ResultDesc"])

	status, body = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	order, _ = body["order"].(map[string]interface{})
	assert.Equal(t, "processing", order["status"])
	assert.Equal(t, "completed", order["payment_status"])

	status, body = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID+"/payment", token, nil)
	assert.Equal(t, http.StatusOK, status)
	txn, _ := body["transaction"].(map[string]interface{})
	assert.Equal(t, "SAK1XYZ9QW", txn["receipt_number"])
}

func TestMpesaPaymentDeclined(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller6", "seller")
	productID, _ := env.createProduct(t, sellerToken, "Beaded Sandals", 1500, nil, 5)

	token := env.registerAndLogin(t, "buyer6", "customer")
	env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
	})
	status, body := env.request(t, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping_address": "12 Haile Selassie Ave",
		"phone":            "254712345678",
		"payment_method":   "mpesa",
	})
	assert.Equal(t, http.StatusCreated, status)
	order, _ := body["order"].(map[string]interface{})
	orderID, _ := order["id"].(string)

	// The customer declines the prompt on their phone
	status, ack := env.request(t, http.MethodPost, "/api/v1/payments/mpesa/callback", "",
		mpesaCallbackBody("ws_CO_test", 1032))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, ack["ResultCode"])

	status, body = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	order, _ = body["order"].(map[string]interface{})
	assert.Equal(t, "cancelled", order["status"])
	assert.Equal(t, "failed", order["payment_status"])
}

func TestMpesaCancelledOrderStaysCancelled(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller7", "seller")
	productID, _ := env.createProduct(t, sellerToken, "Leather Belt", 1800, nil, 5)

	token := env.registerAndLogin(t, "buyer7", "customer")
	env.request(t, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
	})
	status, body := env.request(t, http.MethodPost, "/api/v1/checkout", token, map[string]interface{}{
		"shipping_address": "4 Moi Avenue",
		"phone":            "254712345678",
		"payment_method":   "mpesa",
	})
	assert.Equal(t, http.StatusCreated, status)
	order, _ := body["order"].(map[string]interface{})
	orderID, _ := order["id"].(string)

	status, _ = env.request(t, http.MethodPost, "/api/v1/payments/mpesa/callback", "",
		mpesaCallbackBody("ws_CO_test", 1032))
	assert.Equal(t, http.StatusOK, status)

	// The decline cancelled the order, so another push is refused
	status, _ = env.request(t, http.MethodPost, "/api/v1/orders/"+orderID+"/pay", token, nil)
	assert.Equal(t, http.StatusConflict, status)

	// A replayed success callback is acknowledged but cannot revive it
	status, ack := env.request(t, http.MethodPost, "/api/v1/payments/mpesa/callback", "",
		mpesaCallbackBody("ws_CO_test", 0))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, ack["ResultCode"])

	status, body = env.request(t, http.MethodGet, "/api/v1/orders/"+orderID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	order, _ = body["order"].(map[string]interface{})
	assert.Equal(t, "cancelled", order["status"])
	assert.Equal(t, "failed", order["payment_status"])
}

func TestMpesaCallbackForUnknownRequestIsAcknowledged(t *testing.T) {
	env := setupTestApp(t)

	status, ack := env.request(t, http.MethodPost, "/api/v1/payments/mpesa/callback", "",
		mpesaCallbackBody("ws_CO_never_seen", 0))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, ack["ResultCode"])
	assert.Equal(t, "Success", ack["ResultDesc"])
}

func TestWishlistFlow(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller7", "seller")
	productID, _ := env.createProduct(t, sellerToken, "Kitenge Shirt", 900, nil, 15)

	token := env.registerAndLogin(t, "buyer7", "customer")

	status, _ := env.request(t, http.MethodPost, "/api/v1/wishlist/items", token, map[string]interface{}{
		"product_id": productID,
	})
	assert.Equal(t, http.StatusCreated, status)

	// Wishlisting the same product twice is a quiet no-op
	status, body := env.request(t, http.MethodPost, "/api/v1/wishlist/items", token, map[string]interface{}{
		"product_id": productID,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Product already in wishlist", body["message"])

	status, body = env.request(t, http.MethodGet, "/api/v1/wishlist/", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["count"])

	items, _ := body["items"].([]interface{})
	entry, _ := items[0].(map[string]interface{})
	entryID, _ := entry["id"].(string)

	// Move it to the cart: the cart gains a line and the wishlist empties
	status, _ = env.request(t, http.MethodPost, "/api/v1/wishlist/items/"+entryID+"/move-to-cart", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, cart := env.request(t, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, status)
	cartItems, _ := cart["items"].([]interface{})
	assert.Len(t, cartItems, 1)

	status, body = env.request(t, http.MethodGet, "/api/v1/wishlist/", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, body["count"])
}

func TestPublicCatalogBrowsing(t *testing.T) {
	env := setupTestApp(t)

	sellerToken := env.registerAndLogin(t, "seller8", "seller")
	discount := 750.0
	env.createProduct(t, sellerToken, "Maasai Blanket", 1000, &discount, 8)
	_, slug := env.createProduct(t, sellerToken, "Sisal Basket", 600, nil, 12)

	// No token needed for browsing
	status, body := env.request(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2.0, body["count"])

	status, body = env.request(t, http.MethodGet, "/api/v1/products/search?q=basket", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["count"])

	status, body = env.request(t, http.MethodGet, "/api/v1/products/"+slug, "", nil)
	assert.Equal(t, http.StatusOK, status)
	product, _ := body["product"].(map[string]interface{})
	assert.Equal(t, "Sisal Basket", product["name"])

	status, _ = env.request(t, http.MethodGet, "/api/v1/products/no-such-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Deactivated products disappear from the storefront
	status, body = env.request(t, http.MethodGet, "/api/v1/seller/products", sellerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	products, _ := body["products"].([]interface{})
	first, _ := products[0].(map[string]interface{})
	firstID, _ := first["id"].(string)

	status, _ = env.request(t, http.MethodPost, "/api/v1/seller/products/status", sellerToken, map[string]interface{}{
		"product_ids": []string{firstID},
		"action":      "deactivate",
	})
	assert.Equal(t, http.StatusOK, status)

	status, body = env.request(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["count"])
}
