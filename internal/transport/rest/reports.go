package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/abgdnv/storeadmin/pkg/web"
)

type reportRequest struct {
	Type  string `json:"type"  validate:"required"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (h *Handler) FindReports(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.services.Reports.FindAll(r.Context())
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Reports not found", "Failed to fetch reports")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// GenerateReport aggregates and stores a new report.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req reportRequest
	if !h.decodeAndValidate(w, r, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to generate report", "type", req.Type, "start", req.Start, "end", req.End)
	created, err := h.services.Reports.Generate(r.Context(), req.Type, req.Start, req.End)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Report not found", "Failed to generate report")
		return
	}
	mLogger.InfoContext(r.Context(), "Report generated successfully", "ID", created.ID, "type", created.Type)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

func (h *Handler) FindReportByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.services.Reports.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Report with ID %s not found", id), fmt.Sprintf("Failed to retrieve report with ID %s", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

func (h *Handler) DeleteReportByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	if err := h.services.Reports.DeleteByID(r.Context(), id); err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Report with ID %s not found", id), fmt.Sprintf("Failed to delete report with ID %s", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Report deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// DownloadReport returns the report as an indented JSON attachment named "<name>-<id>.json".
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.services.Reports.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err,
			fmt.Sprintf("Report with ID %s not found", id), fmt.Sprintf("Failed to retrieve report with ID %s", id))
		return
	}
	body, err := json.MarshalIndent(found, "", "  ")
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error encoding report", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to encode report with ID %s", id))
		return
	}
	web.RespondAttachment(w, mLogger, "application/json", fmt.Sprintf("%s-%s.json", found.Name, found.ID), body)
}
