package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
	"github.com/guildwatch/guildwatch/internal/biz/repo"
)

// RelayUsecase delivers formatted lines to the configured output
// channel, at most once and best effort. The resolved channel handle
// is cached in a single slot for the life of the process; a redundant
// first-resolution race only costs an extra fetch.
type RelayUsecase struct {
	messenger repo.Messenger
	channelID string
	logger    *slog.Logger

	mu     sync.Mutex
	handle *domain.Channel
}

// NewRelayUsecase creates a new relay usecase.
func NewRelayUsecase(messenger repo.Messenger, channelID string, logger *slog.Logger) *RelayUsecase {
	return &RelayUsecase{
		messenger: messenger,
		channelID: channelID,
		logger:    logger.With("system", "relay"),
	}
}

// Relay posts one line to the output channel. It never propagates a
// failure to the caller; it reports whether the line was delivered so
// callers can count drops.
func (uc *RelayUsecase) Relay(ctx context.Context, text string) bool {
	ch, err := uc.Resolve(ctx)
	if err != nil {
		uc.logger.Error("relay channel not found", "channel_id", uc.channelID, "err", err)
		return false
	}
	if !ch.Postable() {
		uc.logger.Error("relay channel wrong type", "channel_id", uc.channelID, "kind", string(ch.Kind))
		return false
	}
	if err := uc.messenger.Send(ctx, ch.ID, text); err != nil {
		if errors.Is(err, repo.ErrForbidden) {
			uc.logger.Warn("no permission to send in relay channel", "channel_id", ch.ID)
		} else {
			uc.logger.Error("relay send failed", "channel_id", ch.ID, "err", err)
		}
		return false
	}
	return true
}

// Resolve returns the output channel handle, resolving and caching it
// on first use. The cache is never invalidated while the process
// runs. The lock is not held across the remote call.
func (uc *RelayUsecase) Resolve(ctx context.Context) (*domain.Channel, error) {
	uc.mu.Lock()
	h := uc.handle
	uc.mu.Unlock()
	if h != nil {
		return h, nil
	}
	ch, err := uc.messenger.ResolveChannel(ctx, uc.channelID)
	if err != nil {
		return nil, err
	}
	uc.mu.Lock()
	uc.handle = ch
	uc.mu.Unlock()
	return ch, nil
}
