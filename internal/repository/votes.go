package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/votes"
)

// VoteRepo implements votes.VoteRepository on gorm. The unique index on
// (user_id, post_id, post_kind) backs the one-row-per-key invariant even
// against writers outside this process.
type VoteRepo struct {
	db *gorm.DB
}

func NewVoteRepo(db *gorm.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// Transaction runs fn in a database transaction; the repository it hands
// fn is bound to that transaction.
func (r *VoteRepo) Transaction(ctx context.Context, fn func(tx votes.VoteRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&VoteRepo{db: tx})
	})
}

// FetchVoteByKey returns the voter's row for the post, locked for update
// inside a transaction, or (nil, nil) when none exists.
func (r *VoteRepo) FetchVoteByKey(ctx context.Context, voterID, postID int, kind models.PostKind) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND post_id = ? AND post_kind = ?", voterID, postID, kind).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching vote: %w", err)
	}
	return &vote, nil
}

// UpsertVote writes the row: an update in place when the row was already
// fetched, otherwise an insert that defers to the unique key on conflict.
func (r *VoteRepo) UpsertVote(ctx context.Context, vote *models.Vote) error {
	if vote.ID != 0 {
		return r.db.WithContext(ctx).
			Model(&models.Vote{}).
			Where("id = ?", vote.ID).
			Update("value", vote.Value).Error
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}, {Name: "post_kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(vote).Error
}

// ApplyScoreDelta nudges the post's aggregate score by delta as a single
// SQL increment; the score is never recomputed from the vote rows.
func (r *VoteRepo) ApplyScoreDelta(ctx context.Context, postID int, kind models.PostKind, delta int) error {
	if delta == 0 {
		return nil
	}

	q := r.db.WithContext(ctx)
	switch kind {
	case models.KindQuestion:
		q = q.Model(&models.Question{})
	case models.KindAnswer:
		q = q.Model(&models.Answer{})
	default:
		return fmt.Errorf("unknown post kind %q", kind)
	}

	res := q.Where("id = ?", postID).UpdateColumn("score", gorm.Expr("score + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("applying score delta to %s %d: %w", kind, postID, res.Error)
	}
	if res.RowsAffected == 0 {
		return votes.ErrPostNotFound
	}
	return nil
}
