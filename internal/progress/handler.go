package progress

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"study-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the progress repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches progress routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/flashcard/progress", h.upsert)
	rg.GET("/flashcard/progress/:userId/:documentId", h.list)
}

type upsertRequest struct {
	UserID     string `json:"userId" binding:"required"`
	DocumentID string `json:"documentId" binding:"required"`
	CardIndex  *int   `json:"cardIndex" binding:"required"`
	Mastered   bool   `json:"mastered"`
}

func (h *Handler) upsert(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "userId, documentId and cardIndex are required", nil)
		return
	}
	if *req.CardIndex < 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "cardIndex must be non-negative", nil)
		return
	}
	c.Set("clerkId", req.UserID)
	c.Set("documentId", req.DocumentID)

	saved, err := h.Repo.Upsert(c.Request.Context(), FlashcardProgress{
		UserID:       req.UserID,
		DocumentID:   req.DocumentID,
		CardIndex:    *req.CardIndex,
		Mastered:     req.Mastered,
		LastReviewed: time.Now().UTC(),
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to save progress", nil)
		return
	}

	respond.OK(c, gin.H{"success": true, "progress": saved})
}

func (h *Handler) list(c *gin.Context) {
	userID := c.Param("userId")
	documentID := c.Param("documentId")
	c.Set("clerkId", userID)
	c.Set("documentId", documentID)

	records, err := h.Repo.ListByDocument(c.Request.Context(), userID, documentID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch progress", nil)
		return
	}
	if records == nil {
		records = []FlashcardProgress{}
	}

	respond.OK(c, gin.H{"progress": records})
}
