package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/passmint/passmint-go/internal/export"
	"github.com/passmint/passmint-go/internal/model"
	"github.com/passmint/passmint-go/internal/service"
)

// HistoryHandler handles HTTP requests for the session password history.
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// HandleList handles GET /api/v1/history requests.
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries := h.service.List()
	writeJSON(w, http.StatusOK, model.GenerateResponse{Passwords: entries, Count: len(entries)})
}

// HandleClear handles DELETE /api/v1/history requests.
func (h *HistoryHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"cleared": h.service.Clear()})
}

// HandleExport handles GET /api/v1/history/export requests. The collection is
// streamed as a file download named like passwords_20060102_150405.json.
func (h *HistoryHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r, export.FormatJSON)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	// Render into a buffer first so an export error does not produce a
	// partial 200 response.
	var buf bytes.Buffer
	if err := h.service.Export(&buf, format); err != nil {
		if errors.Is(err, service.ErrHistoryEmpty) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	filename := fmt.Sprintf("passwords_%s.%s", time.Now().Format("20060102_150405"), format)
	if format == export.FormatCSV {
		w.Header().Set("Content-Type", "text/csv")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// HandleImport handles POST /api/v1/history/import requests. The body is the
// raw collection in the format named by the format query parameter.
func (h *HistoryHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r, "")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB
	defer r.Body.Close()

	imported, err := h.service.Import(r.Body, format)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		var parseErr *export.ParseError
		if errors.As(err, &parseErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse(parseErr.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.ImportResponse{Imported: imported})
}

// exportFormat reads the format query parameter, falling back to def when the
// parameter is absent. An empty def makes the parameter required.
func exportFormat(r *http.Request, def export.Format) (export.Format, error) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		if def == "" {
			return "", export.ErrUnsupportedFormat
		}
		return def, nil
	}
	switch export.Format(raw) {
	case export.FormatJSON:
		return export.FormatJSON, nil
	case export.FormatCSV:
		return export.FormatCSV, nil
	default:
		return "", export.ErrUnsupportedFormat
	}
}
