package reminderstore

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *Handler) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", h.HandleRegister)
	auth.POST("/token", h.HandleToken)

	reminders := v1.Group("/reminders", h.RequireBearer())
	reminders.GET("", h.HandleList)
	reminders.GET("/due", h.HandleFetchDue)
	reminders.PUT("/:id", h.HandleUpsert)
	reminders.DELETE("/:id", h.HandleDelete)
	reminders.POST("/:id/trigger", h.HandleTrigger)
}
