package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/database/dbtest"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	db     *gorm.DB
	router *gin.Engine
	issuer *session.Issuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	issuer := session.NewIssuer("test-secret", time.Hour)
	log := zap.NewNop()

	r := gin.New()
	r.Use(middleware.Session(issuer))
	r.POST("/cart", AddItem(db, time.Hour, log))
	r.PATCH("/cart", UpdateItem(db, log))
	r.DELETE("/cart", DeleteItem(db, log))
	r.GET("/cart", GetCart(db, log))
	r.GET("/admin/user-cart/:user_id", GetAdminUserCart(db, log))
	return &fixture{db: db, router: r, issuer: issuer}
}

type request struct {
	method  string
	path    string
	body    interface{}
	guestID string
	userID  string
}

func (f *fixture) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if r.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(r.body))
	}
	req := httptest.NewRequest(r.method, r.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if r.guestID != "" {
		req.AddCookie(&http.Cookie{Name: session.GuestCookieName, Value: r.guestID})
	}
	if r.userID != "" {
		token, err := f.issuer.Issue(r.userID, r.userID+"@example.com", "Test")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) product(t *testing.T, slug string, images ...models.ProductImage) models.Product {
	t.Helper()
	p := models.Product{
		Slug:       slug,
		Title:      "Product " + slug,
		BasePrice:  decimal.RequireFromString("120"),
		OfferPrice: decimal.RequireFromString("99.5"),
		Stock:      10,
		Images:     images,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) guestCart(t *testing.T) (models.GuestUser, models.Cart) {
	t.Helper()
	guest := models.GuestUser{ExpirationDate: time.Now().UTC().Add(time.Hour)}
	require.NoError(t, f.db.Create(&guest).Error)
	cart := models.Cart{GuestUserID: &guest.ID}
	require.NoError(t, f.db.Create(&cart).Error)
	return guest, cart
}

func (f *fixture) expire(t *testing.T, guest models.GuestUser) {
	t.Helper()
	require.NoError(t, f.db.Model(&guest).Update("expiration_date", time.Now().UTC().Add(-time.Hour)).Error)
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func strPtr(s string) *string { return &s }

func TestAddItemAsNewGuest(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")

	w := f.do(t, request{method: http.MethodPost, path: "/cart", body: gin.H{"productId": p.ID, "quantity": 2, "color": nil}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	guestCookie := cookie(w, session.GuestCookieName)
	require.NotNil(t, guestCookie)

	var cart models.Cart
	require.NoError(t, f.db.Preload("CartItems").Where("guest_user_id = ?", guestCookie.Value).First(&cart).Error)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)

	w = f.do(t, request{method: http.MethodPost, path: "/cart", guestID: guestCookie.Value, body: gin.H{"productId": p.ID, "quantity": 1, "color": nil}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, cookie(w, session.GuestCookieName))

	var item models.CartItem
	require.NoError(t, f.db.First(&item, "cart_id = ?", cart.ID).Error)
	assert.Equal(t, 3, item.Quantity)
}

func TestAddItemUnknownGuest(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")

	w := f.do(t, request{method: http.MethodPost, path: "/cart", guestID: "missing", body: gin.H{"productId": p.ID, "quantity": 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid guest user ID in the cookie.", decode(t, w)["error"])

	cleared := cookie(w, session.GuestCookieName)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestExpiredGuestCartIsRejected(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")
	guest, cart := f.guestCart(t)
	item := models.CartItem{CartID: cart.ID, ProductID: &p.ID, Quantity: 2}
	require.NoError(t, f.db.Create(&item).Error)
	f.expire(t, guest)

	cases := []struct {
		name    string
		req     request
		message string
	}{
		{"add", request{method: http.MethodPost, path: "/cart", body: gin.H{"productId": p.ID, "quantity": 1}}, "Invalid guest user ID in the cookie."},
		{"get", request{method: http.MethodGet, path: "/cart"}, "Invalid Guest ID."},
		{"update", request{method: http.MethodPatch, path: "/cart", body: gin.H{"itemId": item.ID, "quantity": 5}}, "Invalid guest user ID in the cookie."},
		{"delete", request{method: http.MethodDelete, path: "/cart?itemId=" + item.ID}, "Invalid guest user ID in the cookie."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.guestID = guest.ID
			w := f.do(t, tc.req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tc.message, decode(t, w)["error"])

			cleared := cookie(w, session.GuestCookieName)
			require.NotNil(t, cleared)
			assert.Less(t, cleared.MaxAge, 0)
		})
	}

	require.NoError(t, f.db.First(&item, "id = ?", item.ID).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, request{method: http.MethodPost, path: "/cart", body: gin.H{"quantity": 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid data format: productId or customProduct is required", body["error"])
	assert.Nil(t, body["item"])

	w = f.do(t, request{method: http.MethodPost, path: "/cart", body: gin.H{"productId": "x", "quantity": 101}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid data format: quantity must be at most 100", decode(t, w)["error"])

	w = f.do(t, request{method: http.MethodPost, path: "/cart", body: gin.H{"productId": "missing", "quantity": 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product does not exist", decode(t, w)["error"])
}

func TestAddItemCapsQuantityAtTen(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")
	guest, cart := f.guestCart(t)
	require.NoError(t, f.db.Create(&models.CartItem{CartID: cart.ID, ProductID: &p.ID, Quantity: 10, Color: strPtr("red")}).Error)

	w := f.do(t, request{method: http.MethodPost, path: "/cart", guestID: guest.ID, body: gin.H{"productId": p.ID, "quantity": 1, "color": "red"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Maximum quantity of 10 reached for this item!", decode(t, w)["error"])

	// a different color is a separate line
	w = f.do(t, request{method: http.MethodPost, path: "/cart", guestID: guest.ID, body: gin.H{"productId": p.ID, "quantity": 1, "color": "blue"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddCustomFastenerIsRepriced(t *testing.T) {
	f := newFixture(t)
	userID := "user-1"

	custom := gin.H{
		"options": gin.H{
			"headType":     "hex",
			"driveType":    "allen",
			"size":         "m5",
			"length":       "20",
			"material":     "brass",
			"coating":      "zinc-coated",
			"quantity":     10,
			"totalPrice":   0.01,
			"fastenerType": "Bolt",
			"image":        "/images/fasteners/bolts.jpg",
		},
	}
	for i := 0; i < 2; i++ {
		w := f.do(t, request{method: http.MethodPost, path: "/cart", userID: userID, body: gin.H{"quantity": 1, "customProduct": custom, "color": nil}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var items []models.CartItem
	require.NoError(t, f.db.Find(&items).Error)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Nil(t, item.ProductID)
		assert.Equal(t, "Custom Bolt", item.CustomProduct["title"])
		assert.Equal(t, 5.0, item.CustomProduct["offerPrice"])
	}
}

func TestAddCustomFastenerRejectsBadOptions(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, request{method: http.MethodPost, path: "/cart", body: gin.H{
		"quantity":      1,
		"customProduct": gin.H{"options": gin.H{"fastenerType": "Washer", "quantity": 1, "size": "m99"}},
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], `"m99" is not a valid Size`)
}

func TestAddCustomCableKeepsPayload(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, request{method: http.MethodPost, path: "/cart", userID: "user-1", body: gin.H{
		"quantity":      1,
		"customProduct": gin.H{"options": gin.H{"totalPrice": 42.5, "image": "/cable.png", "awg": "22"}},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item models.CartItem
	require.NoError(t, f.db.First(&item).Error)
	assert.Equal(t, "Custom Fastener", item.CustomProduct["title"])
	assert.Equal(t, 42.5, item.CustomProduct["basePrice"])
	assert.Equal(t, 42.5, item.CustomProduct["offerPrice"])
	assert.Equal(t, "/cable.png", item.CustomProduct["image"])
}

func TestUpdateItem(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")
	guest, cart := f.guestCart(t)
	item := models.CartItem{CartID: cart.ID, ProductID: &p.ID, Quantity: 1}
	require.NoError(t, f.db.Create(&item).Error)

	other, _ := f.guestCart(t)

	cases := []struct {
		name    string
		guestID string
		qty     int
		status  int
		message string
	}{
		{"other cart", other.ID, 2, http.StatusBadRequest, "No matching product found in your cart."},
		{"too many", guest.ID, 11, http.StatusBadRequest, "Maximum quantity of 10 reached for this item!"},
		{"too few", guest.ID, 0, http.StatusBadRequest, "Minimum quantity is 1!"},
		{"ok", guest.ID, 7, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(t, request{method: http.MethodPatch, path: "/cart", guestID: tc.guestID, body: gin.H{"itemId": item.ID, "quantity": tc.qty}})
			assert.Equal(t, tc.status, w.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, decode(t, w)["error"])
			}
		})
	}

	require.NoError(t, f.db.First(&item, "id = ?", item.ID).Error)
	assert.Equal(t, 7, item.Quantity)
}

func TestDeleteItem(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")
	guest, cart := f.guestCart(t)
	item := models.CartItem{CartID: cart.ID, ProductID: &p.ID, Quantity: 1}
	require.NoError(t, f.db.Create(&item).Error)

	w := f.do(t, request{method: http.MethodDelete, path: "/cart", guestID: guest.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Item ID missing from URL parameters.", decode(t, w)["error"])

	w = f.do(t, request{method: http.MethodDelete, path: "/cart?itemId=nope", guestID: guest.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No such item exists in your cart.", decode(t, w)["error"])

	w = f.do(t, request{method: http.MethodDelete, path: "/cart?itemId=" + item.ID, guestID: guest.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	f.db.Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetCartAsGuest(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, request{method: http.MethodGet, path: "/cart"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"item":[]}`, w.Body.String())

	w = f.do(t, request{method: http.MethodGet, path: "/cart", guestID: "missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Guest ID.", decode(t, w)["error"])

	p := f.product(t, "relay",
		models.ProductImage{URL: "/img/black.png", Color: strPtr("black")},
		models.ProductImage{URL: "/img/red.png", Color: strPtr("Red")},
	)
	guest, cart := f.guestCart(t)
	older := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, f.db.Create(&models.CartItem{Base: models.Base{CreatedAt: older}, CartID: cart.ID, ProductID: &p.ID, Quantity: 2, Color: strPtr("red")}).Error)
	require.NoError(t, f.db.Create(&models.CartItem{CartID: cart.ID, Quantity: 1, CustomProduct: models.JSONMap{"options": map[string]interface{}{}}}).Error)

	w = f.do(t, request{method: http.MethodGet, path: "/cart", guestID: guest.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Item []itemView `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Item, 2)

	custom := body.Item[0]
	assert.Equal(t, "custom-"+custom.ItemID, custom.PID)
	assert.Equal(t, "Custom Fastener", custom.Title)
	assert.Equal(t, placeholderImage, custom.Image)
	assert.Equal(t, "/fasteners", custom.URL)
	assert.True(t, custom.OfferPrice.IsZero())

	regular := body.Item[1]
	assert.Equal(t, p.ID, regular.PID)
	assert.Equal(t, "relay", regular.Slug)
	assert.Equal(t, "/img/red.png", regular.Image)
	assert.Equal(t, "/product/relay?pid="+p.ID+"&color=red", regular.URL)
	assert.Equal(t, "99.5", regular.OfferPrice.String())
}

func TestGetCartMergesGuestForUser(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")
	guest, cart := f.guestCart(t)
	require.NoError(t, f.db.Create(&models.CartItem{CartID: cart.ID, ProductID: &p.ID, Quantity: 3}).Error)

	w := f.do(t, request{method: http.MethodGet, path: "/cart", guestID: guest.ID, userID: "user-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cleared := cookie(w, session.GuestCookieName)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	var body struct {
		Item []itemView `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Item, 1)
	assert.Equal(t, 3, body.Item[0].Quantity)

	userCart, err := FindUserCart(f.db, "user-1")
	require.NoError(t, err)
	require.NotNil(t, userCart)
	assert.Equal(t, cart.ID, userCart.ID)
}

func TestUnitPrice(t *testing.T) {
	price, ok := UnitPrice(models.CartItem{CustomProduct: models.JSONMap{"offerPrice": 12.5}})
	assert.True(t, ok)
	assert.Equal(t, "12.5", price.String())

	_, ok = UnitPrice(models.CartItem{ProductID: strPtr("gone")})
	assert.False(t, ok)

	price, ok = UnitPrice(models.CartItem{Product: &models.Product{OfferPrice: decimal.NewFromInt(7)}})
	assert.True(t, ok)
	assert.Equal(t, "7", price.String())
}

func TestClearUserCart(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")
	userID := "user-1"
	userCart := models.Cart{UserID: &userID}
	require.NoError(t, f.db.Create(&userCart).Error)
	require.NoError(t, f.db.Create(&models.CartItem{CartID: userCart.ID, ProductID: &p.ID, Quantity: 1}).Error)
	_, guestCart := f.guestCart(t)
	require.NoError(t, f.db.Create(&models.CartItem{CartID: guestCart.ID, ProductID: &p.ID, Quantity: 1}).Error)

	require.NoError(t, ClearUserCart(f.db, userID))

	var count int64
	f.db.Model(&models.CartItem{}).Where("cart_id = ?", userCart.ID).Count(&count)
	assert.Zero(t, count)
	f.db.Model(&models.CartItem{}).Where("cart_id = ?", guestCart.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetAdminUserCart(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "relay")
	userID := "user-9"
	cart := models.Cart{UserID: &userID, CartItems: []models.CartItem{{ProductID: &p.ID, Quantity: 3}}}
	require.NoError(t, f.db.Create(&cart).Error)

	w := f.do(t, request{method: http.MethodGet, path: "/admin/user-cart/user-9"})
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["item"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "relay", items[0].(map[string]interface{})["slug"])

	w = f.do(t, request{method: http.MethodGet, path: "/admin/user-cart/nobody"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["item"])
}
