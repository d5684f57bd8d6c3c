package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vidyalayahq/vidyalaya/internal/app/controllers"
	"github.com/vidyalayahq/vidyalaya/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	institutionController *controllers.InstitutionController,
	scopeController *controllers.ScopeController,
	studentController *controllers.StudentController,
	catalogController *controllers.CatalogController,
	paymentController *controllers.PaymentController,
	portalController *controllers.PortalController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/public/sites/:subdomain", institutionController.PublicSite)

	plans := v1.Group("/plans")
	{
		plans.GET("", catalogController.ListPlans)
		plans.GET("/:id", catalogController.GetPlan)
	}

	v1.GET("/features", catalogController.ListFeatures)

	portal := v1.Group("/portal")
	{
		portal.POST("/login", portalController.Login)
		portal.GET("/me", authMiddleware.RequirePortalStudent(), portalController.Profile)
	}

	// --- Owner routes ---
	owner := v1.Group("")
	owner.Use(authMiddleware.RequireOwner())

	institutions := owner.Group("/institutions")
	{
		institutions.POST("", institutionController.SaveDraft)
		institutions.GET("", institutionController.Mine)
		institutions.GET("/:id", institutionController.Get)
		institutions.POST("/:id/publish", institutionController.Publish)
		institutions.POST("/:id/custom-domain", institutionController.RequestCustomDomain)
		institutions.POST("/:id/custom-domain/verify", institutionController.VerifyCustomDomain)
		institutions.GET("/:id/scopes", scopeController.List)
		institutions.GET("/:id/students/summary", studentController.Summary)
	}

	scopes := owner.Group("/scopes/:scopeType")
	{
		scopes.POST("", scopeController.Create)
		scopes.DELETE("/:id", scopeController.Delete)
		scopes.GET("/:id/students", studentController.ListByScope)
		scopes.POST("/:id/students", studentController.Add)
		scopes.POST("/:id/students/bulk", studentController.BulkAdd)
		scopes.POST("/:id/students/upload", studentController.Upload)
		scopes.POST("/:id/students/confirm", studentController.ConfirmImport)
	}

	students := owner.Group("/students")
	{
		students.GET("/:id", studentController.Get)
		students.PATCH("/:id", studentController.Patch)
		students.PUT("/:id/password", studentController.SetPassword)
	}

	owner.GET("/plans/:id/students", studentController.ByPlan)

	payments := owner.Group("/payments")
	{
		payments.GET("", paymentController.History)
		payments.POST("", paymentController.CreateOrder)
		payments.POST("/:id/confirm", paymentController.Confirm)
	}

	// --- Admin routes ---
	admin := owner.Group("")
	admin.Use(authMiddleware.RequireAdmin())
	{
		admin.POST("/plans", catalogController.CreatePlan)
		admin.PUT("/plans/:id", catalogController.UpdatePlan)
		admin.DELETE("/plans/:id", catalogController.DeletePlan)

		admin.POST("/features", catalogController.CreateFeature)
		admin.PUT("/features/:id", catalogController.UpdateFeature)
		admin.DELETE("/features/:id", catalogController.DeleteFeature)

		admin.GET("/coupons", catalogController.ListCoupons)
		admin.POST("/coupons", catalogController.CreateCoupon)
		admin.DELETE("/coupons/:id", catalogController.DeleteCoupon)
	}
}
