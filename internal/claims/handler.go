package claims

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/JaimeStill/superclaims/pkg/formatting"
	"github.com/JaimeStill/superclaims/pkg/handlers"
	"github.com/JaimeStill/superclaims/pkg/routes"
)

const welcomeMessage = "Welcome to the SuperClaims web-app!"

// Multipart field names accepted for claim files.
var fileFields = []string{"files", "input_files"}

// Handler provides HTTP endpoints for claim processing.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and request size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "claims"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for claim endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: h.Welcome},
			{Method: "POST", Pattern: "/claims", Handler: h.Process},
			{Method: "POST", Pattern: "/process-claim", Handler: h.Process},
		},
	}
}

// Welcome returns a greeting.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

// Process reads every uploaded file from a multipart form, rejects
// duplicate content, runs the claim workflow, and returns the completed claim.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	tooLarge := fmt.Errorf("%w (limit %s)", ErrFileTooLarge, formatting.FormatBytes(h.maxUploadSize, 0))

	if r.ContentLength > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, tooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidFile, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads, err := readUploads(r.MultipartForm)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	claim, err := h.sys.Process(r.Context(), uploads)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, claim)
}

func readUploads(form *multipart.Form) ([]Upload, error) {
	var uploads []Upload

	for _, field := range fileFields {
		for _, header := range form.File[field] {
			data, err := readFile(header)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFile, header.Filename, err)
			}

			uploads = append(uploads, Upload{
				Filename: header.Filename,
				Data:     data,
			})
		}
	}

	if len(uploads) == 0 {
		return nil, ErrEmptyClaim
	}

	return uploads, nil
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
