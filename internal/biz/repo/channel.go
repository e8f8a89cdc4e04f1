package repo

import (
	"context"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
)

// ChannelDirectory resolves guild channels and per-snapshot view
// permission.
type ChannelDirectory interface {
	// Channel resolves a channel within a guild, cache first. Returns
	// ErrNotFound when the channel does not exist or belongs to a
	// different guild.
	Channel(ctx context.Context, guildID, channelID string) (*domain.Channel, error)

	// CanView computes the effective view permission the given member
	// snapshot has on the channel. The snapshot's role set is used as
	// supplied, so before and after states of one update event yield
	// independent answers.
	CanView(ctx context.Context, guildID, channelID string, member domain.MemberSnapshot) (bool, error)
}
