package exams

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"study-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the exam attempt repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches exam routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/exam/attempt", h.create)
	rg.GET("/exam/attempts/:userId/:documentId", h.list)
}

type createRequest struct {
	UserID         string          `json:"userId" binding:"required"`
	DocumentID     string          `json:"documentId" binding:"required"`
	Score          *int            `json:"score" binding:"required"`
	TotalQuestions int             `json:"totalQuestions" binding:"required"`
	Answers        json.RawMessage `json:"answers"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "userId, documentId, score and totalQuestions are required", nil)
		return
	}
	if *req.Score < 0 || req.TotalQuestions <= 0 || *req.Score > req.TotalQuestions {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "score must be between 0 and totalQuestions", nil)
		return
	}
	c.Set("clerkId", req.UserID)
	c.Set("documentId", req.DocumentID)

	attempt := ExamAttempt{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		DocumentID:     req.DocumentID,
		Score:          *req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        req.Answers,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Repo.Create(c.Request.Context(), attempt); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to save exam attempt", nil)
		return
	}

	respond.OK(c, gin.H{"success": true, "attempt": attempt})
}

func (h *Handler) list(c *gin.Context) {
	userID := c.Param("userId")
	documentID := c.Param("documentId")
	c.Set("clerkId", userID)
	c.Set("documentId", documentID)

	attempts, err := h.Repo.ListByDocument(c.Request.Context(), userID, documentID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch exam attempts", nil)
		return
	}
	if attempts == nil {
		attempts = []ExamAttempt{}
	}

	respond.OK(c, gin.H{"attempts": attempts})
}
