package models

import "time"

type Question struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `json:"body"`
	AuthorID  int       `json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags      []Tag     `gorm:"many2many:question_tags" json:"tags"`
	Answers   []Answer  `gorm:"foreignKey:QuestionID" json:"answers"`
	Views     int       `gorm:"default:0" json:"views"`
	Score     int       `gorm:"default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AskQuestionRequest struct {
	Title string   `json:"title" binding:"required"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// Answered reports whether at least one answer has been posted.
func (q *Question) Answered() bool {
	return len(q.Answers) > 0
}

// LastActivity is the question's recency key: the most recent answer
// timestamp when answered, otherwise the question's own creation time.
func (q *Question) LastActivity() time.Time {
	latest := q.CreatedAt
	if !q.Answered() {
		return latest
	}
	latest = q.Answers[0].CreatedAt
	for _, a := range q.Answers[1:] {
		if a.CreatedAt.After(latest) {
			latest = a.CreatedAt
		}
	}
	return latest
}
