package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_MethodRouting(t *testing.T) {
	r := New()

	called := false
	r.Get("/products", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.True(t, called, "handler was not called")
	assert.Equal(t, http.StatusOK, w.Code)

	// Same path, wrong method
	req = httptest.NewRequest(http.MethodPost, "/products", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string

	named := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "before "+name)
				next.ServeHTTP(w, r)
				order = append(order, "after "+name)
			})
		}
	}

	r := New(named("global"))
	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}, named("route"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"before global", "before route", "handler", "after route", "after global"}, order)
}

func TestRouter_Group(t *testing.T) {
	globalCalled := false
	groupCalled := false

	mark := func(flag *bool) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				*flag = true
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New(mark(&globalCalled))
	group := r.Group(mark(&groupCalled))
	group.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, globalCalled, "global middleware was not called")
	assert.True(t, groupCalled, "group middleware was not called")
}

func TestRouter_PathValue(t *testing.T) {
	r := New()

	var got string
	r.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		got = r.PathValue("id")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc-123", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc-123", got)
}
