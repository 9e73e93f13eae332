// Package votes keeps the per-user per-post vote ledger and the post
// scores it feeds.
package votes

import (
	"context"
	"fmt"
	"sync"

	"github.com/askhubdev/askhub/backend/internal/models"
)

// VoteRepository stores vote rows and applies score deltas. FetchVoteByKey
// returns (nil, nil) when no row exists. Transaction runs fn atomically;
// on error nothing inside it may persist.
type VoteRepository interface {
	Transaction(ctx context.Context, fn func(tx VoteRepository) error) error
	FetchVoteByKey(ctx context.Context, voterID, postID int, kind models.PostKind) (*models.Vote, error)
	UpsertVote(ctx context.Context, vote *models.Vote) error
	ApplyScoreDelta(ctx context.Context, postID int, kind models.PostKind, delta int) error
}

// AuthorLookup resolves the author of a question or answer, returning
// ErrPostNotFound when the id does not resolve.
type AuthorLookup interface {
	AuthorOf(ctx context.Context, postID int, kind models.PostKind) (int, error)
}

type voteKey struct {
	voterID int
	postID  int
	kind    models.PostKind
}

// Ledger enforces "at most one vote per (voter, post)" and keeps each
// post's score equal to the signed sum of its stored vote rows. Scores
// only ever move by the delta between the old and new vote, so flipping a
// vote any number of times can never drift the aggregate.
type Ledger struct {
	repo  VoteRepository
	posts AuthorLookup

	mu    sync.Mutex
	locks map[voteKey]*sync.Mutex
}

func NewLedger(repo VoteRepository, posts AuthorLookup) *Ledger {
	return &Ledger{
		repo:  repo,
		posts: posts,
		locks: make(map[voteKey]*sync.Mutex),
	}
}

// RegisterVote records value (+1 or -1) from voterID on the given post.
//
// No prior vote applies the full value; an opposite prior vote overwrites
// the row and applies the magnitude-2 delta; an identical prior vote is a
// no-op (delta 0, row untouched) rather than an undo - see DESIGN.md for
// the reasoning behind keeping that behavior.
//
// The lookup and the score update for one (voter, post) key run as a
// single unit: a per-key lock serializes callers in this process, and the
// repository transaction does the same against the store, so two
// concurrent casts of the same vote cannot both count. Votes on different
// keys proceed in parallel.
func (l *Ledger) RegisterVote(ctx context.Context, voterID, postID int, kind models.PostKind, value int) error {
	if value != 1 && value != -1 {
		return ErrInvalidVote
	}
	if !kind.Valid() {
		return fmt.Errorf("unknown post kind %q", kind)
	}

	author, err := l.posts.AuthorOf(ctx, postID, kind)
	if err != nil {
		return err
	}
	if author == voterID {
		return ErrSelfVote
	}

	key := voteKey{voterID: voterID, postID: postID, kind: kind}
	lock := l.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	return l.repo.Transaction(ctx, func(tx VoteRepository) error {
		existing, err := tx.FetchVoteByKey(ctx, voterID, postID, kind)
		if err != nil {
			return fmt.Errorf("fetching vote: %w", err)
		}

		var delta int
		switch {
		case existing == nil:
			delta = value
			vote := &models.Vote{UserID: voterID, PostID: postID, PostKind: kind, Value: value}
			if err := tx.UpsertVote(ctx, vote); err != nil {
				return fmt.Errorf("creating vote: %w", err)
			}
		case existing.Value == value:
			// Re-casting the identical vote changes nothing.
			return nil
		default:
			delta = value - existing.Value
			existing.Value = value
			if err := tx.UpsertVote(ctx, existing); err != nil {
				return fmt.Errorf("updating vote: %w", err)
			}
		}

		if err := tx.ApplyScoreDelta(ctx, postID, kind, delta); err != nil {
			return fmt.Errorf("applying score delta: %w", err)
		}
		return nil
	})
}

func (l *Ledger) keyLock(key voteKey) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	return lock
}
