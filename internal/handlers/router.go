package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nimko_store/internal/services"
)

// SetupRouter wires every endpoint. The storefront is a client-rendered
// front end served from anywhere, so CORS allows all origins.
func SetupRouter(store *StoreHandler, review *ReviewHandler, admin *AdminHandler, auth services.AuthService) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	api := router.Group("/api")
	{
		api.GET("/products", store.ListProducts)
		api.POST("/checkout", store.Checkout)
		api.GET("/promo", store.GetPromo)
		api.POST("/promo/popup", store.MarkPopupShown)

		api.GET("/reviews", review.GetReviews)
		api.POST("/reviews", review.SubmitReview)

		api.POST("/admin/login", admin.Login)
	}

	adminGroup := api.Group("/admin", AuthMiddleware(auth))
	{
		adminGroup.GET("/orders", admin.ListOrders)
		adminGroup.GET("/stream", admin.StreamOrders)
		adminGroup.PUT("/orders/:orderId/status", admin.UpdateStatus)
		adminGroup.DELETE("/orders/:orderId", admin.DeleteOrder)
		adminGroup.GET("/orders/:orderId/links", admin.NotificationLinks)
		adminGroup.GET("/export", admin.ExportOrders)
		adminGroup.POST("/import", admin.ImportOrders)
		adminGroup.GET("/stats", admin.Stats)
	}

	return router
}
