package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/fixrequest"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/handler/http/response"
)

type FixRequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type fixRequestHandlerImpl struct {
	fixRequestService fixrequest.Service
}

func NewFixRequestHandler(fixRequestService fixrequest.Service) FixRequestHandler {
	return &fixRequestHandlerImpl{
		fixRequestService: fixRequestService,
	}
}

// Submit implements FixRequestHandler.
func (h *fixRequestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req fixrequest.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	request, err := h.fixRequestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Fix request submitted", request)
}

// List implements FixRequestHandler.
func (h *fixRequestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := fixrequest.ListFilter{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", 20),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	result, err := h.fixRequestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(result.TotalCount) / result.Limit
	if int(result.TotalCount)%result.Limit > 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, result.FixRequests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

// Get implements FixRequestHandler.
func (h *fixRequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.fixRequestService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// Decide implements FixRequestHandler.
func (h *fixRequestHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req fixrequest.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	request, err := h.fixRequestService.Decide(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// Edit implements FixRequestHandler.
func (h *fixRequestHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	var req fixrequest.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format")
		return
	}

	request, err := h.fixRequestService.Edit(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// Delete implements FixRequestHandler.
func (h *fixRequestHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.fixRequestService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Fix request deleted"})
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
