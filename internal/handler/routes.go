package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the foreground API used by the application views.
func RegisterRoutes(r gin.IRouter, sessions *SessionHandler, reminders *ReminderHandler, notifications *NotificationHandler) {
	v1 := r.Group("/api/v1")

	v1.POST("/session", sessions.HandleStart)
	v1.POST("/settings/changed", sessions.HandleSettingsChanged)

	v1.GET("/reminders/next", reminders.HandleNext)
	v1.GET("/reminders/:id/upcoming", reminders.HandleUpcoming)

	v1.GET("/notifications", notifications.HandleList)
	v1.POST("/notifications/:key/open", notifications.HandleOpen)
	v1.GET("/notifications/permission", notifications.HandleGetPermission)
	v1.PUT("/notifications/permission", notifications.HandleSetPermission)

	v1.GET("/events", notifications.HandleEvents)
}
