// Package repository holds the gorm-backed stores the engine services
// run against.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/votes"
)

type QuestionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// FetchAllQuestions loads every question with tags, answers, and author
// joined, ready for the feed to order and filter.
func (r *QuestionRepo) FetchAllQuestions(ctx context.Context) ([]*models.Question, error) {
	var questions []*models.Question
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Answers").
		Preload("Author").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("fetching questions: %w", err)
	}
	return questions, nil
}

func (r *QuestionRepo) FetchQuestionByID(ctx context.Context, id int) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Answers").
		Preload("Answers.Author").
		Preload("Author").
		First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, votes.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching question %d: %w", id, err)
	}
	return &question, nil
}

func (r *QuestionRepo) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("creating question: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter in place; concurrent readers must
// not lose increments, so this never does a read-modify-write in Go.
func (r *QuestionRepo) IncrementViews(ctx context.Context, id int) error {
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return fmt.Errorf("incrementing views for question %d: %w", id, err)
	}
	return nil
}

// AuthorOf resolves the author of a question or answer for the self-vote
// check.
func (r *QuestionRepo) AuthorOf(ctx context.Context, postID int, kind models.PostKind) (int, error) {
	q := r.db.WithContext(ctx)
	switch kind {
	case models.KindQuestion:
		q = q.Model(&models.Question{})
	case models.KindAnswer:
		q = q.Model(&models.Answer{})
	default:
		return 0, fmt.Errorf("unknown post kind %q", kind)
	}

	var authorID int
	err := q.Select("author_id").Where("id = ?", postID).Take(&authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, votes.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("looking up author of %s %d: %w", kind, postID, err)
	}
	return authorID, nil
}
