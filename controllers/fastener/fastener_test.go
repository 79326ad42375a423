package fastenerControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/fasteners", GetFasteners)
	r.GET("/fasteners/:type", GetFastener)
	r.POST("/fasteners/:type/quote", QuoteFastener(zap.NewNop()))
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetFasteners(t *testing.T) {
	r := newRouter()

	w := serve(r, http.MethodGet, "/fasteners", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 7)
	assert.Equal(t, "Bolt", all[0]["type"])

	w = serve(r, http.MethodGet, "/fasteners/Brass%20Insert", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"brass-inserts"`)

	w = serve(r, http.MethodGet, "/fasteners/rivets", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteFastener(t *testing.T) {
	r := newRouter()
	body := `{"options":{"headType":"hex","driveType":"allen","size":"m5","length":"20","material":"brass","coating":"zinc-coated"},"quantity":40}`

	w := serve(r, http.MethodPost, "/fasteners/bolts/quote", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Quote struct {
			FastenerType string          `json:"fastenerType"`
			Quantity     int             `json:"quantity"`
			TotalPrice   decimal.Decimal `json:"totalPrice"`
		} `json:"quote"`
		CustomProduct map[string]interface{} `json:"customProduct"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Bolt", out.Quote.FastenerType)
	assert.Equal(t, 40, out.Quote.Quantity)
	assert.True(t, decimal.NewFromInt(20).Equal(out.Quote.TotalPrice))
	assert.Equal(t, "Custom Bolt", out.CustomProduct["title"])
	assert.Equal(t, 20.0, out.CustomProduct["offerPrice"])
}

func TestQuoteFastenerInvalid(t *testing.T) {
	r := newRouter()

	w := serve(r, http.MethodPost, "/fasteners/bolts/quote", `{"options":{},"quantity":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var out struct {
		Problems []string `json:"problems"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Problems)
	assert.Equal(t, "Quantity must be at least 1", out.Problems[0])

	w = serve(r, http.MethodPost, "/fasteners/bolts/quote", `{"options":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/fasteners/rivets/quote", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
