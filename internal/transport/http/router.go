// Package httpserver wires handlers onto the echo router. All route and
// guard decisions live here; handlers stay routing-agnostic.
package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photofolio/internal/handlers"
	"photofolio/internal/middleware/auth"
	"photofolio/internal/models"
	"photofolio/internal/service/token"
)

type Deps struct {
	Tokens         *token.Service
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	PhotoHandler   *handlers.PhotoHandler
	AlbumHandler   *handlers.AlbumHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	OrderHandler   *handlers.OrderHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	authed := auth.Require(d.Tokens)
	adminOnly := auth.Require(d.Tokens, models.RoleAdmin)

	// auth
	v1.POST("/auth/register", d.AuthHandler.Register)
	v1.POST("/auth/login", d.AuthHandler.Login)
	v1.GET("/auth/check", d.AuthHandler.Check, authed)

	// users
	me := v1.Group("/users/me", authed)
	me.GET("", d.UserHandler.Me)
	me.PUT("/username", d.UserHandler.UpdateUsername)
	me.PUT("/profilePicture", d.UserHandler.UpdateProfilePicture)
	me.PUT("/firstname", d.UserHandler.UpdateFirstName)
	me.PUT("/lastname", d.UserHandler.UpdateLastName)
	me.PUT("/password", d.UserHandler.UpdatePassword)
	me.GET("/favorites", d.UserHandler.ListFavorites)
	me.PUT("/favorites/photos/:id", d.UserHandler.AddFavoritePhoto)
	me.DELETE("/favorites/photos/:id", d.UserHandler.RemoveFavoritePhoto)
	me.PUT("/favorites/products/:id", d.UserHandler.AddFavoriteProduct)
	me.DELETE("/favorites/products/:id", d.UserHandler.RemoveFavoriteProduct)

	// photos
	photos := v1.Group("/photos")
	photos.GET("", d.PhotoHandler.List)
	photos.GET("/featured", d.PhotoHandler.Featured)
	photos.GET("/:id", d.PhotoHandler.Get)
	photos.GET("/:id/full", d.PhotoHandler.FullRes, authed)

	// albums
	albums := v1.Group("/albums")
	albums.GET("", d.AlbumHandler.List)
	albums.GET("/featured", d.AlbumHandler.Featured)
	albums.GET("/:id", d.AlbumHandler.Get)

	// products
	products := v1.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/search", d.ProductHandler.Search)
	products.GET("/latest", d.ProductHandler.Latest)
	products.GET("/tags/:tag", d.ProductHandler.ByTag)
	products.GET("/:id", d.ProductHandler.Get)

	// search
	v1.GET("/search/photos", d.SearchHandler.Photos)

	// cart
	cart := v1.Group("/cart", authed)
	cart.GET("", d.CartHandler.Get)
	cart.PUT("/add", d.CartHandler.Add)
	cart.PUT("/remove", d.CartHandler.Remove)

	// orders
	orders := v1.Group("/orders", authed)
	orders.POST("", d.OrderHandler.Create)
	orders.GET("", d.OrderHandler.ListMine)
	orders.GET("/:id", d.OrderHandler.Get)

	// admin
	admin := v1.Group("/admin", adminOnly)
	admin.POST("/photos", d.PhotoHandler.Create)
	admin.PATCH("/photos/:id", d.PhotoHandler.Update)
	admin.DELETE("/photos/:id", d.PhotoHandler.Delete)

	admin.POST("/albums", d.AlbumHandler.Create)
	admin.PATCH("/albums/:id", d.AlbumHandler.Update)
	admin.PUT("/albums/:id/photos/:photoId", d.AlbumHandler.AddPhoto)
	admin.DELETE("/albums/:id/photos/:photoId", d.AlbumHandler.RemovePhoto)
	admin.DELETE("/albums/:id", d.AlbumHandler.Delete)

	admin.POST("/products", d.ProductHandler.Create)
	admin.PATCH("/products/:id", d.ProductHandler.Update)
	admin.DELETE("/products/:id", d.ProductHandler.Delete)

	admin.GET("/orders", d.OrderHandler.ListAll)
	admin.GET("/orders/latest", d.OrderHandler.Latest)
	admin.GET("/orders/user/:userId", d.OrderHandler.ListByUser)
	admin.GET("/orders/status/:status", d.OrderHandler.ListByStatus)
	admin.PATCH("/orders/:id", d.OrderHandler.Update)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", d.OrderHandler.Delete)
}
