package usecase

import (
	"context"
	"log/slog"

	"github.com/guildwatch/guildwatch/internal/biz/repo"
	"github.com/guildwatch/guildwatch/internal/conf"
)

// ScopeUsecase decides whether events from a guild are processed at
// all. It gates every detector and fails closed: an unconfirmed
// operator membership suppresses the event.
type ScopeUsecase struct {
	operatorID  string
	watchGuilds conf.IDSet
	members     repo.MemberDirectory
	logger      *slog.Logger
}

// NewScopeUsecase creates a new scope usecase.
func NewScopeUsecase(operatorID string, watchGuilds conf.IDSet, members repo.MemberDirectory, logger *slog.Logger) *ScopeUsecase {
	return &ScopeUsecase{
		operatorID:  operatorID,
		watchGuilds: watchGuilds,
		members:     members,
		logger:      logger.With("system", "scope"),
	}
}

// IsWatched reports whether the guild is in scope. A non-empty guild
// allowlist short-circuits without any remote call; otherwise the
// operator's membership is resolved (cache first, one fetch on miss).
func (uc *ScopeUsecase) IsWatched(ctx context.Context, guildID string) bool {
	if !uc.watchGuilds.Empty() && !uc.watchGuilds.Contains(guildID) {
		return false
	}
	res := uc.members.Membership(ctx, guildID, uc.operatorID)
	if !res.Confirmed() {
		uc.logger.Info("suppressing events, operator membership not confirmed",
			"guild_id", guildID, "result", string(res))
		return false
	}
	return true
}
