package repo

import (
	"context"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
)

// Messenger delivers relay lines to the output channel.
type Messenger interface {
	// ResolveChannel looks the channel up in the local cache and, on a
	// miss, performs one remote fetch. Returns ErrNotFound when the
	// channel cannot be resolved either way.
	ResolveChannel(ctx context.Context, channelID string) (*domain.Channel, error)

	// Send posts text to the channel. Returns ErrForbidden (wrapped)
	// when the bot lacks send permission.
	Send(ctx context.Context, channelID, text string) error
}
