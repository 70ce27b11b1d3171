package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router     *gin.Engine
	tokens     *auth.TokenManager
	users      *MockUserService
	products   *MockProductService
	categories *MockCategoryService
	carts      *MockCartService
	coupons    *MockCouponService
	orders     *MockOrderService
	analytics  *MockAnalyticsService
}

var requestSeq atomic.Int64

func newTestEnv() *testEnv {
	e := &testEnv{
		tokens:     auth.NewTokenManager("test-secret", time.Hour),
		users:      new(MockUserService),
		products:   new(MockProductService),
		categories: new(MockCategoryService),
		carts:      new(MockCartService),
		coupons:    new(MockCouponService),
		orders:     new(MockOrderService),
		analytics:  new(MockAnalyticsService),
	}
	h := New(Deps{
		Users:      e.users,
		Products:   e.products,
		Categories: e.categories,
		Carts:      e.carts,
		Coupons:    e.coupons,
		Orders:     e.orders,
		Analytics:  e.analytics,
		Tokens:     e.tokens,
	})
	e.router = NewRouter(h, []string{"http://localhost:5173"})
	return e
}

// session registers u with the user mock and returns its cookie.
func (e *testEnv) session(t *testing.T, u *user.User) *http.Cookie {
	t.Helper()
	e.users.On("GetByID", mock.Anything, u.ID).Return(u, nil)
	token, err := e.tokens.Generate(u.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	// anonymous requests get their own rate limit bucket
	req.Header.Set("X-Device-ID", fmt.Sprintf("test-%d", requestSeq.Add(1)))
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func customer() *user.User {
	return &user.User{ID: "u1", Name: "Jane", Email: "jane@example.com", Password: "hash", Role: user.RoleUser}
}

func administrator() *user.User {
	return &user.User{ID: "a1", Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin}
}

func httptestRequest(method, path, origin string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("X-Device-ID", fmt.Sprintf("test-%d", requestSeq.Add(1)))
	return req
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
