package handlers

import (
	"github.com/vladimiradmaev/vaidya-health/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService  interfaces.UserServiceInterface
	ReportSvc    interfaces.ReportServiceInterface
	StatsSvc     interfaces.StatsServiceInterface
	ChatSvc      interfaces.ChatServiceInterface
	TaskSvc      interfaces.TaskServiceInterface
	HealthLogSvc interfaces.HealthLogServiceInterface
}
