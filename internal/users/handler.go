package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-backend/internal/documents"
	"study-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the quota ledger.
type Handler struct {
	Svc  *Service
	Docs *documents.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, docs *documents.Service) *Handler {
	return &Handler{Svc: svc, Docs: docs}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/:clerkId", h.get)
}

func (h *Handler) get(c *gin.Context) {
	clerkID := c.Param("clerkId")
	c.Set("clerkId", clerkID)

	user, err := h.Svc.GetOrCreate(c.Request.Context(), clerkID, c.Query("email"), c.Query("name"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch user data", nil)
		return
	}

	docs, err := h.Docs.ListByUser(c.Request.Context(), user.ID, 100, 0)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch user data", nil)
		return
	}
	if docs == nil {
		docs = []documents.Document{}
	}

	respond.OK(c, gin.H{
		"user": gin.H{
			"id":                 user.ID,
			"email":              user.Email,
			"name":               user.Name,
			"documentsUsed":      user.DocumentsUsed,
			"monthlyLimit":       user.MonthlyLimit,
			"remainingDocuments": user.Remaining(),
		},
		"documents": docs,
	})
}
