package models

import "time"

type Tag struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagCount is one row of the tag listing: a tag name and how many
// questions carry it.
type TagCount struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}
