package api

import "github.com/RoyceAzure/lab/shopcart/internal/api/handler"

type Server struct {
	ProductHandler  *handler.ProductHandler
	UserHandler     *handler.UserHandler
	OrderHandler    *handler.OrderHandler
	CartItemHandler *handler.CartItemHandler
}

func NewServer(
	productHandler *handler.ProductHandler,
	userHandler *handler.UserHandler,
	orderHandler *handler.OrderHandler,
	cartItemHandler *handler.CartItemHandler,
) *Server {
	return &Server{
		ProductHandler:  productHandler,
		UserHandler:     userHandler,
		OrderHandler:    orderHandler,
		CartItemHandler: cartItemHandler,
	}
}
