package handlers

import (
	"github.com/gin-gonic/gin"
)

// registerAdmin wires the CMS surface. Every route requires the session
// cookie; role enforcement itself stays with the backend.
func (a *API) registerAdmin(r *gin.RouterGroup) {
	r.GET("/stats", a.relayJSON("admin-stats", true, staticPath("/admin/stats")))
	r.GET("/master/status-order", a.relayJSON("admin-master", true, staticPath("/admin/master/status-order")))

	// books
	r.GET("/books", a.relayJSON("admin-books", true, staticPath("/admin/books")))
	r.POST("/books", a.relayJSON("admin-books", true, staticPath("/admin/books")))
	r.GET("/books/paged", a.relayPaged("admin-books-paged", true, staticPath("/admin/books/paged")))
	r.POST("/books/bulk", a.relayJSON("admin-books-bulk", true, staticPath("/admin/books/bulk")))
	r.GET("/books/:id", a.relayJSON("admin-books", true, idPath("/admin/books/", "")))
	r.PUT("/books/:id", a.relayJSON("admin-books", true, idPath("/admin/books/", "")))
	r.DELETE("/books/:id", a.relayJSON("admin-books", true, idPath("/admin/books/", "")))
	r.POST("/books/:id/cover", a.relayUpload("admin-book-cover", func(c *gin.Context) []string {
		return []string{idPath("/admin/books/", "/cover")(c)}
	}))
	r.DELETE("/books/:id/cover", a.relayJSON("admin-book-cover", true, idPath("/admin/books/", "/cover")))

	// authors
	r.GET("/authors", a.relayJSON("admin-authors", true, staticPath("/admin/authors")))
	r.POST("/authors", a.relayJSON("admin-authors", true, staticPath("/admin/authors")))
	r.PUT("/authors/:id", a.relayJSON("admin-authors", true, idPath("/admin/authors/", "")))
	r.DELETE("/authors/:id", a.relayJSON("admin-authors", true, idPath("/admin/authors/", "")))
	r.POST("/authors/:id/photo", a.relayUpload("admin-author-photo", func(c *gin.Context) []string {
		return []string{idPath("/admin/authors/", "/photo")(c)}
	}))

	// genres
	r.GET("/genres", a.relayJSON("admin-genres", true, staticPath("/admin/genres")))
	r.POST("/genres", a.relayJSON("admin-genres", true, staticPath("/admin/genres")))
	r.GET("/genres/paged", a.relayPaged("admin-genres-paged", true, staticPath("/admin/genres/paged")))

	// orders: the admin submits a desired status id; the state machines
	// themselves live upstream.
	r.GET("/orders", a.relayJSON("admin-orders", true, staticPath("/admin/orders")))
	r.GET("/orders/paged", a.relayPaged("admin-orders-paged", true, staticPath("/admin/orders/paged")))
	r.GET("/orders/:id", a.relayJSON("admin-orders", true, idPath("/admin/orders/", "")))
	r.PATCH("/orders/:id/status", a.relayJSON("admin-order-status", true, idPath("/admin/orders/", "/status")))
	r.PATCH("/orders/:id/status-payment", a.relayJSON("admin-order-status", true, idPath("/admin/orders/", "/status-payment")))

	// payment methods
	r.GET("/payment-methods", a.relayJSON("admin-payment-methods", true, staticPath("/admin/payment-methods")))
	r.POST("/payment-methods", a.relayJSON("admin-payment-methods", true, staticPath("/admin/payment-methods")))
	r.GET("/payment-methods/paged", a.relayPaged("admin-payment-methods-paged", true, staticPath("/admin/payment-methods/paged")))
	r.PATCH("/payment-methods/:id/toggle", a.relayJSON("admin-payment-methods", true, idPath("/admin/payment-methods/", "/toggle")))

	// users
	r.GET("/users", a.relayJSON("admin-users", true, staticPath("/admin/users")))
}
