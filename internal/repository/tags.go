package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/askhubdev/askhub/backend/internal/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db: db}
}

// FetchTagCounts returns every tag with the number of questions carrying
// it. Ordering is the feed service's job.
func (r *TagRepo) FetchTagCounts(ctx context.Context) ([]models.TagCount, error) {
	var counts []models.TagCount
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Select("tags.name AS name, COUNT(question_tags.question_id) AS question_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("fetching tag counts: %w", err)
	}
	return counts, nil
}

// FindOrCreateTags resolves tag names to rows, creating missing ones.
// Names keep their case; uniqueness is case-sensitive.
func (r *TagRepo) FindOrCreateTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag models.Tag
		err := r.db.WithContext(ctx).Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error
		if err != nil {
			return nil, fmt.Errorf("resolving tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
