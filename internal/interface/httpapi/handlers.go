package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"crewtravel-service/internal/usecase"
	"crewtravel-service/pkg/logger"
)

// maxUploadBytes caps workbook uploads. Operational sheets are well under
// a megabyte; 20MB leaves room for embedded styling.
const maxUploadBytes = 20 << 20

// Handler exposes the upload and draft endpoints
type Handler struct {
	tickets *usecase.TicketProcessor
	hotels  *usecase.HotelProcessor
	logger  logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(tickets *usecase.TicketProcessor, hotels *usecase.HotelProcessor, logger logger.Logger) *Handler {
	return &Handler{
		tickets: tickets,
		hotels:  hotels,
		logger:  logger,
	}
}

// Register mounts all routes on the given mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/ticketing/upload", h.handleTicketUpload)
	mux.HandleFunc("/api/ticketing/draft", h.handleTicketDraft)
	mux.HandleFunc("/api/ticketing/diff", h.handleTicketDiff)
	mux.HandleFunc("/api/hotel-block/upload", h.handleHotelUpload)
	mux.HandleFunc("/api/hotel-block/draft", h.handleHotelDraft)
}

func (h *Handler) handleTicketUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	filename, data, err := readUpload(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.tickets.ProcessUpload(r.Context(), filename, data)
	if err != nil {
		h.logger.Error("Ticket upload failed", "error", err)
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"uploadId":       result.UploadID,
		"rowCount":       result.RowCount,
		"groupCount":     result.GroupCount,
		"matchedCrew":    result.MatchedCrew,
		"unmatchedNames": result.UnmatchedNames,
		"diff":           result.Diff,
	})
}

func (h *Handler) handleTicketDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	uploadID := r.URL.Query().Get("uploadId")
	showAll := r.URL.Query().Get("showAll") == "true"

	html, err := h.tickets.BuildDraft(r.Context(), uploadID, showAll)
	if err != nil {
		h.logger.Error("Ticket draft failed", "error", err)
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"html": html})
}

func (h *Handler) handleTicketDiff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	diff, err := h.tickets.Diff(r.Context())
	if err != nil {
		h.logger.Error("Ticket diff failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"diff": diff})
}

func (h *Handler) handleHotelUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	filename, data, err := readUpload(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.hotels.ProcessUpload(r.Context(), filename, data)
	if err != nil {
		h.logger.Error("Hotel block upload failed", "error", err)
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"uploadId": result.UploadID,
		"rowCount": result.RowCount,
		"diff":     result.Diff,
	})
}

func (h *Handler) handleHotelDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	uploadID := r.URL.Query().Get("uploadId")

	draft, err := h.hotels.BuildDraft(r.Context(), uploadID)
	if err != nil {
		h.logger.Error("Hotel block draft failed", "error", err)
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"emailBody":   draft.EmailBody,
		"filename":    draft.Filename,
		"excelBase64": base64.StdEncoding.EncodeToString(draft.Workbook),
		"diff":        draft.Diff,
	})
}

// readUpload pulls the workbook out of a multipart form ("file" field) or,
// failing that, the raw request body.
func readUpload(r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return "", nil, err
			}
			return header.Filename, data, nil
		}
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	return "upload.xlsx", data, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Response encode failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
