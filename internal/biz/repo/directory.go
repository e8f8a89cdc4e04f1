package repo

import (
	"context"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
)

// MemberDirectory resolves guild membership facts.
type MemberDirectory interface {
	// Membership reports whether userID is currently a member of the
	// guild. Implementations consult the local cache first and perform
	// at most one remote fetch on a miss; they never return an error,
	// folding every failure mode into the result enum.
	Membership(ctx context.Context, guildID, userID string) domain.MembershipResult
}

// GuildDirectory resolves guild display data.
type GuildDirectory interface {
	// GuildName returns the guild's display name, or the raw ID when
	// the guild is unknown locally.
	GuildName(ctx context.Context, guildID string) string
}
