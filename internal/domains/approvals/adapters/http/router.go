package http

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with all approval routes registered. The
// action endpoints accept both GET and POST: links in review emails arrive as
// GETs, the listing page submits POSTs.
func NewRouter(api *ApprovalAPI, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware...)

	router.GET("/webhooks/orders-create", api.OrdersCreate)
	router.POST("/webhooks/orders-create", api.OrdersCreate)

	admin := router.Group("/admin")
	admin.GET("/pending", api.Pending)
	admin.GET("/approve", api.Approve)
	admin.POST("/approve", api.Approve)
	admin.GET("/reject", api.Reject)
	admin.POST("/reject", api.Reject)

	return router
}
