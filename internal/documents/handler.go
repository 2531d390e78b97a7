package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/document/:id", h.get)
	rg.DELETE("/document/:id", h.delete)
}

func (h *Handler) get(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, err := h.Svc.Get(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch document", nil)
		}
		return
	}

	respond.OK(c, gin.H{"document": doc})
}

func (h *Handler) delete(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	if err := h.Svc.Delete(c.Request.Context(), documentID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete document", nil)
		}
		return
	}

	respond.OK(c, gin.H{"success": true, "message": "Document deleted"})
}
