package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/askhubdev/askhub/backend/internal/feed"
	"github.com/askhubdev/askhub/backend/internal/middleware"
	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/pagination"
	"github.com/askhubdev/askhub/backend/internal/repository"
	"github.com/askhubdev/askhub/backend/internal/votes"
)

type QuestionHandler struct {
	feed      *feed.Service
	questions *repository.QuestionRepo
	answers   *repository.AnswerRepo
	tags      *repository.TagRepo
}

func NewQuestionHandler(feedService *feed.Service, questions *repository.QuestionRepo, answers *repository.AnswerRepo, tags *repository.TagRepo) *QuestionHandler {
	return &QuestionHandler{feed: feedService, questions: questions, answers: answers, tags: tags}
}

// GetQuestions returns one page of the question feed. Query params:
// order (newest|active|unanswered), search, page, pageSize.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	order := c.DefaultQuery("order", "newest")
	searchText := c.Query("search")
	page := pagination.Param(c.Query("page"), pagination.DefaultPage)
	pageSize := pagination.Param(c.Query("pageSize"), pagination.DefaultPageSize)

	items, meta, err := h.feed.GetFeed(c.Request.Context(), order, searchText, page, pageSize)
	if err != nil {
		log.Printf("feed query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	// If no questions, return empty array not null
	if items == nil {
		items = []*models.Question{}
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": items,
		"meta":      meta,
	})
}

// GetQuestion returns a single question by ID and counts the view.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	question, err := h.questions.FetchQuestionByID(c.Request.Context(), id)
	if errors.Is(err, votes.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err != nil {
		log.Printf("question fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
		return
	}

	if err := h.questions.IncrementViews(c.Request.Context(), id); err != nil {
		// The read already succeeded; don't fail the request over the counter.
		log.Printf("view increment failed for question %d: %v", id, err)
	} else {
		question.Views++
	}

	c.JSON(http.StatusOK, question)
}

// AskQuestion creates a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	var input models.AskQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tags, err := h.tags.FindOrCreateTags(c.Request.Context(), input.Tags)
	if err != nil {
		log.Printf("tag resolution failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	question := &models.Question{
		Title:    input.Title,
		Body:     input.Body,
		AuthorID: userID,
		Tags:     tags,
	}

	if err := h.questions.CreateQuestion(c.Request.Context(), question); err != nil {
		log.Printf("question create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// PostAnswer attaches an answer to a question (PROTECTED - requires authentication)
func (h *QuestionHandler) PostAnswer(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	var input models.PostAnswerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body is required"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	answer := &models.Answer{
		Body:       input.Body,
		QuestionID: questionID,
		AuthorID:   userID,
	}

	err = h.answers.CreateAnswer(c.Request.Context(), answer)
	if errors.Is(err, votes.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err != nil {
		log.Printf("answer create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post answer"})
		return
	}

	c.JSON(http.StatusCreated, answer)
}
