package routes

import (
	"freshmart_api/internal/handlers"
	"freshmart_api/internal/handlers/admin"
	"freshmart_api/internal/handlers/payment"
	"freshmart_api/internal/handlers/product"
	"freshmart_api/internal/handlers/user"
	"freshmart_api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Authentification
	auth := api.Group("/auth")
	{
		auth.POST("/signup", middleware.SignupRateLimit(), user.Signup)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.POST("/refresh", user.Refresh)
		auth.POST("/logout", user.Logout)
		auth.POST("/forgot-password", middleware.ForgotPasswordRateLimit(), user.ForgotPassword)
		auth.POST("/reset-password", user.ResetPassword)
		auth.GET("/me", middleware.AuthRequired(), user.Me)

		// OAuth (Google, Facebook, Twitter)
		auth.GET("/oauth/:provider", handlers.BeginAuth)
		auth.GET("/oauth/:provider/callback", handlers.CallbackAuth)
	}

	// Catalogue (public)
	api.GET("/products", product.ListProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/categories", product.ListCategories)
	api.GET("/categories/:slug/products", product.ListProductsByCategory)
	api.GET("/search/products", product.SearchProducts)
	api.GET("/vouchers", user.ListVouchers)

	// Retour des passerelles de paiement (appelé hors session)
	api.GET("/checkout/callback/:gateway", payment.PaymentCallback)
	api.POST("/checkout/callback/:gateway", payment.PaymentCallback)

	// Espace client (JWT requis)
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		// Panier
		authed.GET("/cart", user.GetCart)
		authed.POST("/cart/add", user.AddToCart)
		authed.PATCH("/cart/items/:productId", user.UpdateCartQuantity)
		authed.DELETE("/cart/items/:productId", user.RemoveFromCart)
		authed.DELETE("/cart/clear", user.ClearCart)

		// Bon de réduction (un seul à la fois)
		authed.POST("/cart/voucher", user.ApplyVoucher)
		authed.DELETE("/cart/voucher", user.ClearVoucher)

		// Carnet d'adresses
		authed.GET("/addresses", user.ListMyAddresses)
		authed.POST("/addresses", user.CreateAddress)
		authed.PUT("/addresses/:id", user.UpdateAddress)
		authed.PATCH("/addresses/:id/default", user.MakeDefaultAddress)
		authed.DELETE("/addresses/:id", user.DeleteAddress)

		// Commandes
		authed.POST("/checkout", payment.Checkout)
		authed.GET("/orders/mine", user.GetMyOrders)
		authed.GET("/orders/:id", user.GetOrderByID)
	}

	// Back-office (admin uniquement)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		adminGroup.POST("/products", product.CreateProduct)
		adminGroup.PUT("/products/:id", product.UpdateProduct)
		adminGroup.POST("/products/:id/images", product.UploadProductImage)

		adminGroup.GET("/orders", admin.ListOrders)
		adminGroup.PATCH("/orders/:id/status", admin.UpdateOrderStatus)
	}
}
