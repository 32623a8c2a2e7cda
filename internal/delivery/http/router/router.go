// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ecofinds/internal/delivery/http/middleware"
	"ecofinds/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UploadPath is the image upload route, exempt from the JSON body limit.
const UploadPath = "/images"

type RouterParams struct {
	fx.In

	SessionHandler    *handler.SessionHandler
	ViewHandler       *handler.ViewHandler
	ProductHandler    *handler.ProductHandler
	CartHandler       *handler.CartHandler
	ImageHandler      *handler.ImageHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler    *handler.SessionHandler
	viewHandler       *handler.ViewHandler
	productHandler    *handler.ProductHandler
	cartHandler       *handler.CartHandler
	imageHandler      *handler.ImageHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:    params.SessionHandler,
		viewHandler:       params.ViewHandler,
		productHandler:    params.ProductHandler,
		cartHandler:       params.CartHandler,
		imageHandler:      params.ImageHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	sessionGroup := e.Group("/session")
	{
		sessionGroup.POST("/login", r.sessionHandler.Login)
		sessionGroup.POST("/logout", r.sessionHandler.Logout)
		sessionGroup.GET("", r.sessionHandler.Current)
	}

	// Stored images are public so listings can reference them directly
	e.GET("/images/:key", r.imageHandler.Download)

	e.GET("/view", r.viewHandler.Snapshot)
	viewGroup := e.Group("/view")
	viewGroup.Use(r.sessionMiddleware.RequireSession)
	{
		viewGroup.POST("/navigate", r.viewHandler.Navigate)
		viewGroup.POST("/edit/:id", r.viewHandler.BeginEdit)
		viewGroup.DELETE("/edit", r.viewHandler.CancelEdit)
		viewGroup.POST("/draft", r.viewHandler.SubmitDraft)
	}

	e.POST(UploadPath, r.imageHandler.Upload, r.sessionMiddleware.RequireSession)

	productGroup := e.Group("/products")
	productGroup.Use(r.sessionMiddleware.RequireSession)
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.POST("", r.productHandler.Create)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.PATCH("/:id", r.productHandler.Update)
		productGroup.DELETE("/:id", r.productHandler.Delete)
		productGroup.GET("/:id/qrcode", r.productHandler.QRCode)
	}

	cartGroup := e.Group("/cart")
	cartGroup.Use(r.sessionMiddleware.RequireSession)
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.POST("/items", r.cartHandler.Add)
		cartGroup.POST("/checkout", r.cartHandler.Checkout)
	}

	e.GET("/purchases", r.cartHandler.Purchases, r.sessionMiddleware.RequireSession)
}
