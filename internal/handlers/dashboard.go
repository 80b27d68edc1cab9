package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/dashboard-backend/internal/dto"
	"github.com/GregMSThompson/dashboard-backend/internal/errs"
	"github.com/GregMSThompson/dashboard-backend/internal/middleware"
	"github.com/GregMSThompson/dashboard-backend/internal/models"
	"github.com/GregMSThompson/dashboard-backend/internal/response"
)

type dashboardService interface {
	GetTab(ctx context.Context, uid string, roles []string, tab models.Category) (dto.TabResponse, error)
	GetLayout(ctx context.Context, uid string, roles []string) (dto.LayoutResponse, error)
	SetVisibility(ctx context.Context, uid string, roles []string, widgetID string, req dto.SetVisibilityRequest) (dto.MutationResponse, error)
	SetOrder(ctx context.Context, uid string, roles []string, widgetID string, req dto.SetOrderRequest) (dto.MutationResponse, error)
	SetSettings(ctx context.Context, uid string, roles []string, widgetID string, req dto.SetSettingsRequest) (dto.MutationResponse, error)
	ReorderTab(ctx context.Context, uid string, roles []string, tab models.Category, req dto.ReorderTabRequest) (dto.ReorderResponse, error)
	ResetTab(ctx context.Context, uid string, roles []string, tab models.Category) (dto.TabResponse, error)
	ClearPreferences(ctx context.Context, uid string) error
	Catalog(ctx context.Context, roles []string) dto.CatalogResponse
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/catalog", h.GetCatalog)
	r.Get("/layout", h.GetLayout)
	r.Delete("/preferences", h.ClearPreferences)
	r.Get("/tabs/{tab}", h.GetTab)
	r.Put("/tabs/{tab}/reorder", h.ReorderTab)
	r.Post("/tabs/{tab}/reset", h.ResetTab)
	r.Put("/widgets/{widgetId}/visibility", h.SetVisibility)
	r.Put("/widgets/{widgetId}/order", h.SetOrder)
	r.Put("/widgets/{widgetId}/settings", h.SetSettings)
	return r
}

func (h *dashboardHandlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := h.DashboardSvc.Catalog(r.Context(), middleware.Roles(r.Context()))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.DashboardSvc.GetLayout(ctx, middleware.UID(ctx), middleware.Roles(ctx))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) GetTab(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tab := models.Category(chi.URLParam(r, "tab"))
	resp, err := h.DashboardSvc.GetTab(ctx, middleware.UID(ctx), middleware.Roles(ctx), tab)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) ReorderTab(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderTabRequest
	if err := decode(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	ctx := r.Context()
	tab := models.Category(chi.URLParam(r, "tab"))
	resp, err := h.DashboardSvc.ReorderTab(ctx, middleware.UID(ctx), middleware.Roles(ctx), tab, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) ResetTab(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tab := models.Category(chi.URLParam(r, "tab"))
	resp, err := h.DashboardSvc.ResetTab(ctx, middleware.UID(ctx), middleware.Roles(ctx), tab)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req dto.SetVisibilityRequest
	if err := decode(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	ctx := r.Context()
	resp, err := h.DashboardSvc.SetVisibility(ctx, middleware.UID(ctx), middleware.Roles(ctx), chi.URLParam(r, "widgetId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) SetOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.SetOrderRequest
	if err := decode(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	ctx := r.Context()
	resp, err := h.DashboardSvc.SetOrder(ctx, middleware.UID(ctx), middleware.Roles(ctx), chi.URLParam(r, "widgetId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) SetSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.SetSettingsRequest
	if err := decode(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	ctx := r.Context()
	resp, err := h.DashboardSvc.SetSettings(ctx, middleware.UID(ctx), middleware.Roles(ctx), chi.URLParam(r, "widgetId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) ClearPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.DashboardSvc.ClearPreferences(ctx, middleware.UID(ctx)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewValidationError("malformed request body")
	}
	return nil
}
