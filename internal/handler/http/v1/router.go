package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", h.login)

	// Цикл проверки: событие, поиск в DMV, решение
	api.GET("/events/next", h.nextEvent)
	api.POST("/dmv/lookup", h.lookupVehicle)
	api.POST("/annotations", h.submitAnnotation)
	api.GET("/stats", h.getStats)

	system := api.Group("/system")
	{
		system.POST("/init", h.initStore)
		system.GET("/health", h.healthCheck)

		// Сброс закрыт ключом, только если ключи настроены
		if len(h.cfg.APIKeys) > 0 {
			system.POST("/reset", APIKeyAuthMiddleware(h.cfg, h.logger), h.resetStore)
		} else {
			system.POST("/reset", h.resetStore)
		}
	}
}
