package api

import "github.com/RoyceAzure/lab/shopcenter/internal/api/handler"

type Server struct {
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	AddressHandler *handler.AddressHandler
	OrderHandler   *handler.OrderHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	addressHandler *handler.AddressHandler,
	orderHandler *handler.OrderHandler,
) *Server {
	return &Server{
		AuthHandler:    authHandler,
		ProductHandler: productHandler,
		CartHandler:    cartHandler,
		AddressHandler: addressHandler,
		OrderHandler:   orderHandler,
	}
}
