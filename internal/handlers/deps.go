package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/dashboard-backend/internal/middleware"
	"github.com/GregMSThompson/dashboard-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Auth            middleware.TokenVerifier
	DashboardSvc    dashboardService
	Metrics         http.Handler
}
