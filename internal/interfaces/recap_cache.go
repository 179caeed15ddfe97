package interfaces

import "context"

// RecapCache stores generated journey recaps per character so repeated recap
// requests don't re-invoke the narrative generator. Entries are invalidated
// whenever the character's chain changes.
type RecapCache interface {
	// Get returns the cached recap, or "" with a nil error on a miss.
	Get(ctx context.Context, characterID string) (string, error)
	Set(ctx context.Context, characterID, recap string) error
	Invalidate(ctx context.Context, characterID string) error
}
