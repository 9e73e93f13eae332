package votes

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askhubdev/askhub/backend/internal/models"
)

type postKey struct {
	postID int
	kind   models.PostKind
}

type memState struct {
	votes  map[voteKey]*models.Vote
	scores map[postKey]int
	nextID int
}

// memVoteRepo is an in-memory VoteRepository. Transaction holds the store
// lock for the whole unit, mirroring the serialization a real store
// provides per key.
type memVoteRepo struct {
	mu    sync.Mutex
	state memState
}

func newMemVoteRepo() *memVoteRepo {
	return &memVoteRepo{state: memState{
		votes:  make(map[voteKey]*models.Vote),
		scores: make(map[postKey]int),
	}}
}

func (m *memVoteRepo) Transaction(ctx context.Context, fn func(tx VoteRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&memTx{state: &m.state})
}

func (m *memVoteRepo) FetchVoteByKey(ctx context.Context, voterID, postID int, kind models.PostKind) (*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{state: &m.state}).FetchVoteByKey(ctx, voterID, postID, kind)
}

func (m *memVoteRepo) UpsertVote(ctx context.Context, vote *models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{state: &m.state}).UpsertVote(ctx, vote)
}

func (m *memVoteRepo) ApplyScoreDelta(ctx context.Context, postID int, kind models.PostKind, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{state: &m.state}).ApplyScoreDelta(ctx, postID, kind, delta)
}

func (m *memVoteRepo) score(postID int, kind models.PostKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.scores[postKey{postID, kind}]
}

func (m *memVoteRepo) voteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.votes)
}

type memTx struct {
	state *memState
}

func (t *memTx) Transaction(ctx context.Context, fn func(tx VoteRepository) error) error {
	return fn(t)
}

func (t *memTx) FetchVoteByKey(ctx context.Context, voterID, postID int, kind models.PostKind) (*models.Vote, error) {
	if v, ok := t.state.votes[voteKey{voterID, postID, kind}]; ok {
		cloned := *v
		return &cloned, nil
	}
	return nil, nil
}

func (t *memTx) UpsertVote(ctx context.Context, vote *models.Vote) error {
	key := voteKey{vote.UserID, vote.PostID, vote.PostKind}
	if existing, ok := t.state.votes[key]; ok {
		existing.Value = vote.Value
		return nil
	}
	t.state.nextID++
	vote.ID = t.state.nextID
	cloned := *vote
	t.state.votes[key] = &cloned
	return nil
}

func (t *memTx) ApplyScoreDelta(ctx context.Context, postID int, kind models.PostKind, delta int) error {
	t.state.scores[postKey{postID, kind}] += delta
	return nil
}

// fakeAuthors maps posts to author ids.
type fakeAuthors map[postKey]int

func (f fakeAuthors) AuthorOf(ctx context.Context, postID int, kind models.PostKind) (int, error) {
	author, ok := f[postKey{postID, kind}]
	if !ok {
		return 0, ErrPostNotFound
	}
	return author, nil
}

const (
	authorID = 1
	voterA   = 2
	voterB   = 3
	postID   = 10
)

func newTestLedger() (*Ledger, *memVoteRepo) {
	repo := newMemVoteRepo()
	authors := fakeAuthors{
		{postID, models.KindQuestion}: authorID,
		{postID, models.KindAnswer}:  authorID,
	}
	return NewLedger(repo, authors), repo
}

func TestRegisterVote_FirstUpvote(t *testing.T) {
	ledger, repo := newTestLedger()

	err := ledger.RegisterVote(context.Background(), voterA, postID, models.KindQuestion, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.score(postID, models.KindQuestion))
	assert.Equal(t, 1, repo.voteCount())
}

func TestRegisterVote_FlipAppliesDeltaOfTwo(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()

	require.NoError(t, ledger.RegisterVote(ctx, voterA, postID, models.KindQuestion, 1))
	require.Equal(t, 1, repo.score(postID, models.KindQuestion))

	require.NoError(t, ledger.RegisterVote(ctx, voterA, postID, models.KindQuestion, -1))

	assert.Equal(t, -1, repo.score(postID, models.KindQuestion), "flip must move the score by exactly -2")
	assert.Equal(t, 1, repo.voteCount(), "flip updates the row in place")
}

func TestRegisterVote_DuplicateIdenticalVoteIsNoOp(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()

	require.NoError(t, ledger.RegisterVote(ctx, voterA, postID, models.KindQuestion, 1))
	require.NoError(t, ledger.RegisterVote(ctx, voterA, postID, models.KindQuestion, 1))

	assert.Equal(t, 1, repo.score(postID, models.KindQuestion))
	assert.Equal(t, 1, repo.voteCount())
}

func TestRegisterVote_ManyFlipsNeverDriftTheScore(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()

	values := []int{1, -1, 1, 1, -1, -1, 1}
	for _, v := range values {
		require.NoError(t, ledger.RegisterVote(ctx, voterA, postID, models.KindQuestion, v))
	}

	// Score always equals the signed sum of stored rows: one row, last value +1.
	assert.Equal(t, 1, repo.score(postID, models.KindQuestion))
	assert.Equal(t, 1, repo.voteCount())
}

func TestRegisterVote_SelfVoteRejectedWithoutScoreChange(t *testing.T) {
	ledger, repo := newTestLedger()

	err := ledger.RegisterVote(context.Background(), authorID, postID, models.KindQuestion, 1)

	assert.ErrorIs(t, err, ErrSelfVote)
	assert.Equal(t, 0, repo.score(postID, models.KindQuestion))
	assert.Equal(t, 0, repo.voteCount())
}

func TestRegisterVote_UnknownPost(t *testing.T) {
	ledger, repo := newTestLedger()

	err := ledger.RegisterVote(context.Background(), voterA, 999, models.KindQuestion, 1)

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, 0, repo.voteCount())
}

func TestRegisterVote_InvalidValue(t *testing.T) {
	ledger, _ := newTestLedger()

	assert.ErrorIs(t, ledger.RegisterVote(context.Background(), voterA, postID, models.KindQuestion, 0), ErrInvalidVote)
	assert.ErrorIs(t, ledger.RegisterVote(context.Background(), voterA, postID, models.KindQuestion, 5), ErrInvalidVote)
}

func TestRegisterVote_AnswerVotesScoreTheAnswer(t *testing.T) {
	ledger, repo := newTestLedger()

	require.NoError(t, ledger.RegisterVote(context.Background(), voterA, postID, models.KindAnswer, -1))

	assert.Equal(t, -1, repo.score(postID, models.KindAnswer))
	assert.Equal(t, 0, repo.score(postID, models.KindQuestion))
}

// Two distinct voters upvoting the same post concurrently must both land:
// no lost update.
func TestRegisterVote_ConcurrentDistinctVoters(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, voter := range []int{voterA, voterB} {
		wg.Add(1)
		go func(voter int) {
			defer wg.Done()
			assert.NoError(t, ledger.RegisterVote(ctx, voter, postID, models.KindQuestion, 1))
		}(voter)
	}
	wg.Wait()

	assert.Equal(t, 2, repo.score(postID, models.KindQuestion))
	assert.Equal(t, 2, repo.voteCount())
}

// The same voter double-submitting concurrently must count exactly once:
// both calls cannot read "no existing vote".
func TestRegisterVote_ConcurrentSameKeyCountsOnce(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ledger.RegisterVote(ctx, voterA, postID, models.KindQuestion, 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.score(postID, models.KindQuestion))
	assert.Equal(t, 1, repo.voteCount())
}
