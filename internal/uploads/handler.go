package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-backend/internal/extract"
	"study-backend/internal/materials"
	"study-backend/internal/shared/server/respond"
	"study-backend/internal/users"
)

// maxUploadBytes caps the request body at 25MB.
const maxUploadBytes = 25 << 20

var allowedContentTypes = map[string]bool{
	extract.MimePDF:  true,
	extract.MimeDOCX: true,
	extract.MimePPTX: true,
}

// Handler wires the upload endpoint to the pipeline service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the upload route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 25MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", "No file uploaded", nil)
		return
	}

	clerkID := c.PostForm("clerkId")
	if clerkID == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "clerkId is required", nil)
		return
	}
	c.Set("clerkId", clerkID)

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		respond.Error(c, http.StatusBadRequest, "unsupported_type", "Invalid file type. Only PDF, DOCX, and PPTX files are allowed.", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process document", nil)
		return
	}
	defer f.Close()

	doc, err := h.Svc.Process(c.Request.Context(), Input{
		ClerkID:      clerkID,
		OriginalName: fileHeader.Filename,
		MimeType:     contentType,
		Language:     c.PostForm("language"),
		Body:         f,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
		case errors.Is(err, users.ErrLimitReached):
			respond.Error(c, http.StatusForbidden, "limit_reached", "Monthly upload limit reached", nil)
		case errors.Is(err, ErrInsufficientContent):
			respond.Error(c, http.StatusBadRequest, "insufficient_content", "Could not extract enough text from file", nil)
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "Invalid file type. Only PDF, DOCX, and PPTX files are allowed.", nil)
		case errors.Is(err, materials.ErrMalformedResponse):
			respond.Error(c, http.StatusInternalServerError, "generation_failed", "Generated materials were malformed", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process document", err.Error())
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, gin.H{
		"success": true,
		"document": gin.H{
			"id":            doc.ID,
			"filename":      doc.OriginalFilename,
			"summary":       doc.Summary,
			"flashcards":    doc.Flashcards,
			"examQuestions": doc.ExamQuestions,
			"uploadDate":    doc.CreatedAt,
		},
	})
}
