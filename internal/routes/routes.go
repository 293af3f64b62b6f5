package routes

import (
	"github.com/gin-gonic/gin"

	"ispcrm/internal/authz"
	"ispcrm/internal/handlers"
	"ispcrm/internal/middleware"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Lead     *handlers.LeadHandler
	Product  *handlers.ProductHandler
	Project  *handlers.ProjectHandler
	Customer *handlers.CustomerHandler
	Report   *handlers.ReportHandler
	Health   *handlers.HealthHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, auth gin.HandlerFunc) *gin.Engine {
	// ---- public
	r.GET("/health", h.Health.Check)
	r.POST("/api/auth/register", h.Auth.Register)
	r.POST("/api/auth/login", h.Auth.Login)

	// ---- protected
	api := r.Group("/api", auth)

	api.GET("/auth/profile", h.Auth.Profile)

	leads := api.Group("/leads")
	{
		leads.POST("", h.Lead.Create)
		leads.GET("", h.Lead.List)
		leads.GET("/stats", h.Lead.Stats)
		leads.GET("/:id", h.Lead.GetByID)
		leads.PUT("/:id", h.Lead.Update)
		leads.DELETE("/:id", h.Lead.Delete)
	}

	// catalog reads are open; writes are manager-only
	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.GetByID)

		writes := products.Group("", middleware.Require(authz.ActionWriteProducts))
		writes.POST("", h.Product.Create)
		writes.PUT("/:id", h.Product.Update)
		writes.DELETE("/:id", h.Product.Delete)
	}

	projects := api.Group("/projects")
	{
		projects.POST("", h.Project.Create)
		projects.GET("", h.Project.List)
		projects.GET("/:id", h.Project.GetByID)
		projects.POST("/:id/approve", middleware.Require(authz.ActionDecideProjects), h.Project.Decide)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.GetByID)
		customers.POST("/:id/services", h.Customer.AddService)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/sales/export", h.Report.Export)
		reports.GET("/leads-by-status", h.Report.LeadsByStatus)
	}

	return r
}
