// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/commerce"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, manager *commerce.Manager, cfg *config.Config) {
	commerceHandler := handlers.NewCommerceHandler(manager, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db)
	orderHandler := handlers.NewOrderHandler(db, manager, cfg)
	reviewHandler := handlers.NewReviewHandler(db)
	paymentHandler := handlers.NewPaymentHandler(cfg)

	// Catalog is public
	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.ListProductReviews)
	}
	api.GET("/categories", categoryHandler.ListCategories)

	// Cart and wishlist work before sign-in; identity attaches when a
	// token is present
	storefront := api.Group("")
	storefront.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart := storefront.Group("/cart")
		{
			cart.GET("", commerceHandler.GetCart)
			cart.DELETE("", commerceHandler.ClearCart)
			cart.POST("/items", commerceHandler.AddCartItem)
			cart.PUT("/items/:productId", commerceHandler.UpdateCartItem)
			cart.DELETE("/items/:productId", commerceHandler.RemoveCartItem)
		}

		wishlist := storefront.Group("/wishlist")
		{
			wishlist.GET("", commerceHandler.GetWishlist)
			wishlist.POST("/items", commerceHandler.AddWishlistItem)
			wishlist.DELETE("/items/:productId", commerceHandler.RemoveWishlistItem)
		}

		storefront.POST("/session/logout", commerceHandler.Logout)
	}

	// Sign-in needs a valid token
	api.POST("/session/login", middleware.AuthMiddleware(cfg), commerceHandler.Login)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		orders := authed.Group("/orders")
		{
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/invoice", orderHandler.DownloadInvoice)
		}

		authed.POST("/payment/intent", paymentHandler.CreatePaymentIntent)

		reviews := authed.Group("/reviews")
		{
			reviews.POST("", reviewHandler.CreateReview)
			reviews.PUT("/:id", reviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
			reviews.POST("/:id/helpful", reviewHandler.MarkReviewHelpful)
		}
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		admin.GET("/orders", orderHandler.ListAllOrders)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}
}
