package routes

import (
	"github.com/jmcrae/attire/internal/handler/api"
)

// APIDeps contains the handlers behind the JSON API routes
type APIDeps struct {
	ProductHandler      *api.ProductHandler
	AdminProductHandler *api.AdminProductHandler
	CartHandler         *api.CartHandler
	OrderHandler        *api.OrderHandler
	CustomerHandler     *api.CustomerHandler
}
