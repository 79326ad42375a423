package productcontroller

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/database/dbtest"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	db     *gorm.DB
	cache  *cache.Memory
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	store := cache.NewMemory("test", cache.DefaultMemorySize, time.Hour)
	uploader := storage.NewLocalStore(t.TempDir(), "/uploads")
	log := zap.NewNop()

	r := gin.New()
	r.GET("/products", GetProducts(db, log))
	r.GET("/products/:slug", GetProductBySlug(db, store, time.Minute, log))
	r.GET("/categories", GetAllCategories(db, log))
	r.POST("/admin/categories", CreateCategory(db, log))
	r.PUT("/admin/categories/:id", UpdateCategory(db, store, log))
	r.DELETE("/admin/categories/:id", DeleteCategory(db, store, log))
	r.POST("/admin/products", CreateProduct(db, log))
	r.PUT("/admin/products/:id", UpdateProduct(db, store, log))
	r.DELETE("/admin/products/:id", DeleteProduct(db, store, log))
	r.POST("/admin/products/:id/images", UploadProductImage(db, uploader, store, log))
	r.GET("/admin/products/export", ExportProductsToExcel(db, log))
	r.POST("/admin/products/import", ImportProductsFromExcel(db, store, log))
	return &fixture{db: db, cache: store, router: r}
}

func (f *fixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) seed(t *testing.T, slug, title, offer string, categoryID *string, created time.Time) models.Product {
	t.Helper()
	p := models.Product{
		Base:       models.Base{CreatedAt: created},
		Slug:       slug,
		Title:      title,
		BasePrice:  decimal.RequireFromString("1000"),
		OfferPrice: decimal.RequireFromString(offer),
		Stock:      5,
		CategoryID: categoryID,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

type listResponse struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

func slugs(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Slug)
	}
	return out
}

func TestGetProductsFilters(t *testing.T) {
	f := newFixture(t)
	batteries := models.Category{Name: "Batteries", Slug: "batteries"}
	require.NoError(t, f.db.Create(&batteries).Error)

	base := time.Now().UTC().Add(-time.Hour)
	f.seed(t, "lipo-pack", "LiPo Pack", "450", &batteries.ID, base)
	f.seed(t, "nimh-pack", "NiMH Pack", "300", &batteries.ID, base.Add(time.Minute))
	f.seed(t, "relay", "Relay Module", "120", nil, base.Add(2*time.Minute))

	var resp listResponse
	w := f.do(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"relay", "nimh-pack", "lipo-pack"}, slugs(resp.Products))
	assert.EqualValues(t, 3, resp.Total)

	w = f.do(http.MethodGet, "/products?search=PACK&category=batteries&sort_by=offer_price&order=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"nimh-pack", "lipo-pack"}, slugs(resp.Products))

	w = f.do(http.MethodGet, "/products?min_price=200&max_price=400", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"nimh-pack"}, slugs(resp.Products))

	w = f.do(http.MethodGet, "/products?sort_by=title&order=asc&limit=2&page=2", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"relay"}, slugs(resp.Products))
	assert.EqualValues(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Page)

	for _, q := range []string{"sort_by=price;drop", "min_price=abc", "page=0", "limit=x"} {
		w = f.do(http.MethodGet, "/products?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestGetProductBySlugUsesCache(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "relay", "Relay Module", "120", nil, time.Now().UTC())

	w := f.do(http.MethodGet, "/products/relay", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Relay Module"`)

	cached, err := f.cache.Get(context.Background(), productCacheKey(f.cache, "relay"))
	require.NoError(t, err)
	assert.NotEmpty(t, cached)

	// a write behind the handler's back is not visible until invalidated
	require.NoError(t, f.db.Model(&p).Update("title", "Changed").Error)
	w = f.do(http.MethodGet, "/products/relay", nil)
	assert.Contains(t, w.Body.String(), `"title":"Relay Module"`)

	w = f.do(http.MethodPut, "/admin/products/"+p.ID, gin.H{"title": "Relay Board"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodGet, "/products/relay", nil)
	assert.Contains(t, w.Body.String(), `"title":"Relay Board"`)

	w = f.do(http.MethodGet, "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndUpdateProduct(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/admin/products", gin.H{"title": "Servo Motor MG995", "basePrice": 500, "offerPrice": 450, "stock": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "servo-motor-mg995", created.Slug)

	w = f.do(http.MethodPost, "/admin/products", gin.H{"title": "Servo Motor MG995", "basePrice": 500, "offerPrice": 450})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(http.MethodPost, "/admin/products", gin.H{"title": "Cheap", "basePrice": 100, "offerPrice": 150})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/admin/products", gin.H{"title": "Orphan", "basePrice": 10, "offerPrice": 5, "categoryId": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/admin/products", gin.H{"title": "***", "basePrice": 10, "offerPrice": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product slug cannot be empty")

	w = f.do(http.MethodPut, "/admin/products/"+created.ID, gin.H{"offerPrice": 600})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPut, "/admin/products/"+created.ID, gin.H{"slug": "---"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPut, "/admin/products/"+created.ID, gin.H{"stock": 9, "slug": "MG995"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 9, updated.Stock)
	assert.Equal(t, "mg995", updated.Slug)

	w = f.do(http.MethodDelete, "/admin/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(http.MethodGet, "/products/mg995", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var withDeleted models.Product
	require.NoError(t, f.db.Unscoped().First(&withDeleted, "id = ?", created.ID).Error)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/admin/categories", gin.H{"name": "Wires & Cables"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))
	assert.Equal(t, "wires-and-cables", cat.Slug)

	w = f.do(http.MethodPost, "/admin/categories", gin.H{"name": "Wires and Cables"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(http.MethodPost, "/admin/categories", gin.H{"name": "???"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPut, "/admin/categories/"+cat.ID, gin.H{"name": "Cables"})
	require.Equal(t, http.StatusOK, w.Code)

	p := f.seed(t, "hookup-wire", "Hookup Wire", "50", &cat.ID, time.Now().UTC())

	w = f.do(http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Cables"`)

	w = f.do(http.MethodDelete, "/admin/categories/"+cat.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, f.db.First(&p, "id = ?", p.ID).Error)
	assert.Nil(t, p.CategoryID)
}

func multipartBody(t *testing.T, field, filename, contentType string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range extra {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadProductImage(t *testing.T) {
	f := newFixture(t)
	p := f.seed(t, "relay", "Relay", "120", nil, time.Now().UTC())

	body, ct := multipartBody(t, "image", "relay red.png", "image/png", []byte("png-bytes"), map[string]string{"color": "red"})
	req := httptest.NewRequest(http.MethodPost, "/admin/products/"+p.ID+"/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var img models.ProductImage
	require.NoError(t, f.db.First(&img, "product_id = ?", p.ID).Error)
	require.NotNil(t, img.Color)
	assert.Equal(t, "red", *img.Color)
	assert.Contains(t, img.URL, "/uploads/products/")

	body, ct = multipartBody(t, "image", "notes.pdf", "application/pdf", []byte("%PDF"), nil)
	req = httptest.NewRequest(http.MethodPost, "/admin/products/"+p.ID+"/images", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportThenImportProducts(t *testing.T) {
	f := newFixture(t)
	cat := models.Category{Name: "Relays", Slug: "relays"}
	require.NoError(t, f.db.Create(&cat).Error)
	p := f.seed(t, "relay", "Relay", "120", &cat.ID, time.Now().UTC())

	w := f.do(http.MethodGet, "/admin/products/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	workbook := w.Body.Bytes()
	require.NotEmpty(t, workbook)

	// change the row in the database, then restore it from the workbook
	require.NoError(t, f.db.Model(&p).Updates(map[string]interface{}{"title": "Edited", "stock": 0}).Error)

	body, ct := multipartBody(t, "file", "products.xlsx", "application/octet-stream", workbook, nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/products/import", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.EqualValues(t, 1, summary["updated_count"])
	assert.EqualValues(t, 0, summary["created_count"])

	require.NoError(t, f.db.First(&p, "id = ?", p.ID).Error)
	assert.Equal(t, "Relay", p.Title)
	assert.Equal(t, 5, p.Stock)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, cat.ID, *p.CategoryID)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "m3-brass-insert-x50", Slugify("  M3 Brass Insert (x50) "))
	assert.Equal(t, "ecrou-inox-m6", Slugify("Écrou inox M6"))
	assert.Equal(t, "", Slugify("!!!"))

	for _, title := range []string{"Шайба", "ボルト", "螺丝"} {
		assert.NotEmpty(t, Slugify(title), title)
	}
}

func TestCategoryChangesInvalidateProductPages(t *testing.T) {
	f := newFixture(t)
	cat := models.Category{Name: "Motors", Slug: "motors"}
	require.NoError(t, f.db.Create(&cat).Error)
	f.seed(t, "stepper", "Stepper", "900", &cat.ID, time.Now().UTC())

	w := f.do(http.MethodGet, "/products/stepper", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Motors"`)

	w = f.do(http.MethodPut, "/admin/categories/"+cat.ID, gin.H{"name": "Drives"})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(http.MethodGet, "/products/stepper", nil)
	assert.Contains(t, w.Body.String(), `"name":"Drives"`)

	w = f.do(http.MethodDelete, "/admin/categories/"+cat.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cached, err := f.cache.Get(context.Background(), productCacheKey(f.cache, "stepper"))
	require.NoError(t, err)
	assert.Empty(t, cached)
	w = f.do(http.MethodGet, "/products/stepper", nil)
	assert.NotContains(t, w.Body.String(), `"name":"Drives"`)
}
