package handlers

import (
	"log"
	"net/http"

	"github.com/rsathishtechit/video-player/internal/services"
)

// AdminHandler handles administrative operations
type AdminHandler struct {
	Service *services.AdminService // admin operations go through here
}

// NewAdminHandler creates handler with injected admin service
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

// FactoryReset handles POST /api/admin/factory-reset - clears all library data
func (h *AdminHandler) FactoryReset(w http.ResponseWriter, r *http.Request) {
	log.Println("Factory reset requested by user")

	if err := h.Service.FactoryReset(); err != nil {
		SendError(w, "Factory reset failed: "+err.Error(), http.StatusInternalServerError, err)
		return
	}
	SendJSON(w, http.StatusOK, "Library factory reset completed - all data cleared", nil)
}

// GetStats handles GET /api/admin/stats - shows basic library statistics
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, "Library statistics retrieved", h.Service.GetLibraryStats())
}
