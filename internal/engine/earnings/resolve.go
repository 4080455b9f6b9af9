package earnings

import (
	"context"

	"github.com/anatolykoptev/go_ytearn/internal/engine/youtube"
)

// ResolveChannel runs only the first two stages: classify raw, then map it to a
// canonical channel ID (zero or one upstream call).
func ResolveChannel(ctx context.Context, c *youtube.Client, raw string) (youtube.Identifier, string, error) {
	id, err := youtube.Resolve(raw)
	if err != nil {
		return youtube.Identifier{}, "", err
	}
	channelID, err := c.CanonicalID(ctx, id)
	if err != nil {
		return id, "", err
	}
	return id, channelID, nil
}
