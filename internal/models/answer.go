package models

import "time"

type Answer struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Body       string    `gorm:"not null" json:"body"`
	QuestionID int       `gorm:"index" json:"question_id"`
	AuthorID   int       `json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	Score      int       `gorm:"default:0" json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PostAnswerRequest struct {
	Body string `json:"body" binding:"required"`
}
