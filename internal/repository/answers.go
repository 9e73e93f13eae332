package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/votes"
)

type AnswerRepo struct {
	db *gorm.DB
}

func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// CreateAnswer attaches an answer to its question; the question must exist.
func (r *AnswerRepo) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", answer.QuestionID).Count(&exists).Error; err != nil {
		return fmt.Errorf("checking question %d: %w", answer.QuestionID, err)
	}
	if exists == 0 {
		return votes.ErrPostNotFound
	}

	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		return fmt.Errorf("creating answer: %w", err)
	}
	return nil
}

func (r *AnswerRepo) FetchAnswerByID(ctx context.Context, id int) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).Preload("Author").First(&answer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, votes.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching answer %d: %w", id, err)
	}
	return &answer, nil
}
