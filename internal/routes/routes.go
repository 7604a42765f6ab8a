package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/jurisdesk/jurisdesk-backend/internal/handler"
	"github.com/jurisdesk/jurisdesk-backend/internal/middleware"
	"github.com/jurisdesk/jurisdesk-backend/pkg/cache"
	"github.com/jurisdesk/jurisdesk-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	templateHandler *handler.TemplateHandler,
	automationHandler *handler.AutomationHandler,
	clientHandler *handler.ClientHandler,
	caseHandler *handler.CaseHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
) {
	api := router.Group("/api/v1", middleware.JWTAuth(jwtManager))

	// Document templates
	templates := api.Group("/templates")
	{
		templates.GET("", templateHandler.List)
		templates.GET("/search", templateHandler.Search)
		templates.POST("", templateHandler.Create)
		templates.GET("/:id", templateHandler.Get)
		templates.PUT("/:id", templateHandler.Update)
		templates.DELETE("/:id", templateHandler.Delete)
		templates.POST("/:id/favorite", templateHandler.ToggleFavorite)
	}

	// Document automation: generation, assembly and versioning
	automation := api.Group("/document-automation")
	{
		automation.POST("/generate", automationHandler.Generate)
		automation.POST("/assembly", automationHandler.Assemble)
		automation.POST("/assembly/reorder", automationHandler.Reorder)
		automation.GET("/auto-fill", automationHandler.AutoFill)
		automation.GET("/stats", automationHandler.Stats)

		// Static catalogs, cached at the edge
		automation.GET("/placeholders", middleware.CacheWithTTL(redisClient, cache.TTLCatalog), automationHandler.Placeholders)
		automation.GET("/categories", middleware.CacheWithTTL(redisClient, cache.TTLCatalog), automationHandler.Categories)

		documents := automation.Group("/documents")
		{
			documents.GET("", automationHandler.ListDocuments)
			documents.POST("", automationHandler.CreateDocument)
			documents.GET("/:id", automationHandler.GetDocument)
			documents.PUT("/:id", automationHandler.UpdateDocument)
			documents.DELETE("/:id", automationHandler.DeleteDocument)
			documents.GET("/:id/versions", automationHandler.ListVersions)
			documents.POST("/:id/versions/:version/restore", automationHandler.RestoreVersion)
			documents.POST("/:id/export", automationHandler.ExportDocument)
		}
	}

	// CRM: clients and cases feeding the auto-fill resolver
	clients := api.Group("/clients")
	{
		clients.GET("", clientHandler.List)
		clients.POST("", clientHandler.Create)
		clients.GET("/:id", clientHandler.Get)
		clients.PUT("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Delete)
	}

	cases := api.Group("/cases")
	{
		cases.GET("", caseHandler.List)
		cases.POST("", caseHandler.Create)
		cases.GET("/:id", caseHandler.Get)
		cases.PUT("/:id", caseHandler.Update)
		cases.DELETE("/:id", caseHandler.Delete)
	}
}
