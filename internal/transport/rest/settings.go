package rest

import (
	"encoding/json"
	"net/http"

	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/pkg/web"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	settings, err := h.services.Settings.Get(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Settings not found", "Failed to fetch settings")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, settings)
}

// UpdateSettings replaces the site settings. Validation happens in the service.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var settings model.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	saved, err := h.services.Settings.Update(r.Context(), settings)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Settings not found", "Failed to update settings")
		return
	}
	mLogger.InfoContext(r.Context(), "Settings updated successfully")
	web.RespondJSON(w, mLogger, http.StatusOK, saved)
}
