package votes

import "errors"

var (
	// ErrSelfVote rejects a vote cast by the post's own author.
	ErrSelfVote = errors.New("cannot vote on your own post")

	// ErrPostNotFound means the target post id does not resolve.
	ErrPostNotFound = errors.New("post not found")

	// ErrRateLimited means the voter is still inside the cooldown window
	// from their previous vote. Kept distinct from ErrSelfVote so the
	// caller can render a different message.
	ErrRateLimited = errors.New("voting too fast, try again in a few seconds")

	// ErrInvalidVote rejects any value other than +1 or -1.
	ErrInvalidVote = errors.New("vote value must be +1 or -1")
)
