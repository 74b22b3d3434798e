package router

import (
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api"
	m "github.com/RoyceAzure/lab/shopcenter/internal/api/middleware"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker[uuid.UUID], userService service.IUserService, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件, recover放最外層才能攔到後續中間件與handler的panic
	r.Use(m.RecoverMiddleware(logger))
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	adminOnly := m.AdminMiddleware(userService)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
			r.Post("/login/admin", server.AuthHandler.AdminLogin)
			r.Post("/refresh-token", server.AuthHandler.ReNewToken)
			r.Post("/logout", server.AuthHandler.LogOut)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		//商品路由, 讀取公開, 寫入僅限管理員
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/{id}", server.ProductHandler.GetProduct)
			r.With(m.AuthMiddleware, adminOnly).Post("/", server.ProductHandler.CreateProduct)
			r.With(m.AuthMiddleware, adminOnly).Delete("/{id}", server.ProductHandler.DeleteProduct)
		})

		//購物車路由
		r.Route("/cart", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Post("/", server.CartHandler.AddItem)
			r.Get("/", server.CartHandler.GetCart)
			r.Delete("/{itemID}", server.CartHandler.RemoveItem)
			r.Put("/{itemID}/increase", server.CartHandler.IncreaseItem)
		})

		//訂單路由
		r.Route("/order", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Post("/", server.OrderHandler.PlaceOrder)
			r.Get("/{id}", server.OrderHandler.GetOrder)
			r.With(adminOnly).Put("/{id}/status", server.OrderHandler.UpdateOrderStatus)
		})
		r.With(m.AuthMiddleware).Get("/orders", server.OrderHandler.ListOrders)

		//地址路由
		r.Route("/address", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Post("/", server.AddressHandler.AddAddress)
			r.Get("/", server.AddressHandler.ListAddresses)
		})
	})
	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
