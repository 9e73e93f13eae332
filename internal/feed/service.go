// Package feed ranks, filters, and pages the question listing.
package feed

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/askhubdev/askhub/backend/internal/models"
	"github.com/askhubdev/askhub/backend/internal/pagination"
	"github.com/askhubdev/askhub/backend/internal/search"
)

// QuestionRepository is the store the feed reads from. Implementations
// return questions with tags, answers, and author populated.
type QuestionRepository interface {
	FetchAllQuestions(ctx context.Context) ([]*models.Question, error)
}

// TagRepository supplies the tag listing counts.
type TagRepository interface {
	FetchTagCounts(ctx context.Context) ([]models.TagCount, error)
}

// Service answers "page N of questions, ordered by X, filtered by S".
type Service struct {
	questions QuestionRepository
	tags      TagRepository
}

func NewService(questions QuestionRepository, tags TagRepository) *Service {
	return &Service{questions: questions, tags: tags}
}

// GetFeed fetches all questions, orders them under the named ordering,
// filters them against the search string when one was given, and returns
// the requested page. A blank search means no filter; a non-blank search
// that parses to an empty query matches nothing.
func (s *Service) GetFeed(ctx context.Context, order, searchText string, page, pageSize int) ([]*models.Question, models.PageMeta, error) {
	questions, err := s.questions.FetchAllQuestions(ctx)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("fetching questions: %w", err)
	}

	ordered := Sort(ParseOrder(order), questions)

	if strings.TrimSpace(searchText) != "" {
		query := search.Parse(searchText)
		filtered := make([]*models.Question, 0, len(ordered))
		for _, q := range ordered {
			if search.Matches(q, query) {
				filtered = append(filtered, q)
			}
		}
		ordered = filtered
	}

	items, meta := pagination.Paginate(ordered, page, pageSize)
	return items, meta, nil
}

// GetTags returns one page of the tag listing, busiest tags first with
// name as the tie-break so pages stay stable.
func (s *Service) GetTags(ctx context.Context, page, pageSize int) ([]models.TagCount, models.PageMeta, error) {
	counts, err := s.tags.FetchTagCounts(ctx)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("fetching tag counts: %w", err)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].QuestionCount != counts[j].QuestionCount {
			return counts[i].QuestionCount > counts[j].QuestionCount
		}
		return counts[i].Name < counts[j].Name
	})

	items, meta := pagination.Paginate(counts, page, pageSize)
	return items, meta, nil
}
