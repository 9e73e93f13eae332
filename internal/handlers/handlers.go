package handlers

import (
	"gorm.io/gorm"

	"github.com/askhubdev/askhub/backend/internal/feed"
	"github.com/askhubdev/askhub/backend/internal/repository"
	"github.com/askhubdev/askhub/backend/internal/votes"
)

// Handler combines all handler types
type Handler struct {
	Question *QuestionHandler
	Tag      *TagHandler
	Vote     *VoteHandler
}

// NewHandler wires the repositories and engine services into a unified
// handler with all sub-handlers.
func NewHandler(db *gorm.DB) *Handler {
	questions := repository.NewQuestionRepo(db)
	answers := repository.NewAnswerRepo(db)
	tags := repository.NewTagRepo(db)
	voteRows := repository.NewVoteRepo(db)

	feedService := feed.NewService(questions, tags)
	ledger := votes.NewLedger(voteRows, questions)
	guard := votes.NewRateGuard(votes.DefaultCooldown)

	return &Handler{
		Question: NewQuestionHandler(feedService, questions, answers, tags),
		Tag:      NewTagHandler(feedService),
		Vote:     NewVoteHandler(ledger, guard),
	}
}
