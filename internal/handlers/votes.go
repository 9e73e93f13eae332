package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/askhubdev/askhub/backend/internal/middleware"
	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/votes"
)

type VoteHandler struct {
	ledger *votes.Ledger
	guard  *votes.RateGuard
}

func NewVoteHandler(ledger *votes.Ledger, guard *votes.RateGuard) *VoteHandler {
	return &VoteHandler{ledger: ledger, guard: guard}
}

// VoteQuestion handles upvoting/downvoting a question (PROTECTED - requires authentication)
func (h *VoteHandler) VoteQuestion(c *gin.Context) {
	h.vote(c, models.KindQuestion)
}

// VoteAnswer handles upvoting/downvoting an answer (PROTECTED - requires authentication)
func (h *VoteHandler) VoteAnswer(c *gin.Context) {
	h.vote(c, models.KindAnswer)
}

func (h *VoteHandler) vote(c *gin.Context, kind models.PostKind) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input models.CastVoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote value must be -1 or 1"})
		return
	}

	voterID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// Cooldown check comes first so a throttled voter never touches the ledger.
	if err := h.guard.Allow(voterID); err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "You are voting too fast, slow down"})
		return
	}

	err = h.ledger.RegisterVote(c.Request.Context(), voterID, postID, kind, input.Value)
	switch {
	case errors.Is(err, votes.ErrSelfVote):
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot vote on your own post"})
	case errors.Is(err, votes.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, votes.ErrInvalidVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote value must be -1 or 1"})
	case err != nil:
		log.Printf("vote failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
	}
}
