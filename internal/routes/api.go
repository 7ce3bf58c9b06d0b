package routes

import (
	"github.com/jmcrae/attire/internal/router"
)

// RegisterAPIRoutes registers the storefront and internal JSON API routes
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Catalog
	r.Get("/api/products", deps.ProductHandler.List)
	r.Get("/api/products/{id}", deps.ProductHandler.Get)

	// Internal product management
	r.Post("/api/internal/products", deps.AdminProductHandler.Create)
	r.Patch("/api/internal/products/{id}", deps.AdminProductHandler.Update)
	r.Post("/api/internal/products/{id}/archive", deps.AdminProductHandler.Archive)
	r.Post("/api/internal/products/{id}/unarchive", deps.AdminProductHandler.Unarchive)
	r.Post("/api/internal/products/{id}/inventory", deps.AdminProductHandler.AddInventory)

	// Cart
	r.Get("/api/cart/{customerId}", deps.CartHandler.Get)
	r.Post("/api/cart/add", deps.CartHandler.Add)
	r.Post("/api/cart/remove", deps.CartHandler.Remove)

	// Orders
	r.Post("/api/orders", deps.OrderHandler.Create)
	r.Get("/api/orders/{id}", deps.OrderHandler.Get)
	r.Get("/api/orders", deps.OrderHandler.List)

	// Customers
	r.Post("/api/customers/register", deps.CustomerHandler.Register)
}
