package handler

import (
	"net/http"

	"slotlink/internal/links/service"
	httputil "slotlink/pkg/http"
	"slotlink/pkg/logger"
	"slotlink/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const basePath = "/api/v1/links"

type LinkHandler struct {
	service service.LinkService
	log     *logger.Logger
}

func NewLinkHandler(service service.LinkService, log *logger.Logger) *LinkHandler {
	return &LinkHandler{
		service: service,
		log:     log,
	}
}

func (h *LinkHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(basePath, h.Create)
	router.GET(basePath, h.Get)
	router.PATCH(basePath, h.Update)
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateLinkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	link, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, link); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *LinkHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	link, err := h.service.Get(r.Context(), r.URL.Query().Get("linkId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, link); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.UpdateLinkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	link, err := h.service.SetActive(r.Context(), r.URL.Query().Get("linkId"), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, link); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}
