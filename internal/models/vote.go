package models

import "time"

// PostKind distinguishes the two votable post types.
type PostKind string

const (
	KindQuestion PostKind = "question"
	KindAnswer   PostKind = "answer"
)

func (k PostKind) Valid() bool {
	return k == KindQuestion || k == KindAnswer
}

// Vote model - tracks individual user votes on questions and answers.
// At most one row exists per (user, post, kind); a changed vote updates
// the row in place rather than adding a second one.
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"uniqueIndex:idx_vote_key" json:"user_id"`
	PostID    int       `gorm:"uniqueIndex:idx_vote_key" json:"post_id"`
	PostKind  PostKind  `gorm:"uniqueIndex:idx_vote_key" json:"post_kind"`
	Value     int       `json:"value"` // +1 or -1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CastVoteRequest struct {
	Value int `json:"value" binding:"required,oneof=-1 1"`
}
