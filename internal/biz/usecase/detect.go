package usecase

import (
	"context"
	"log/slog"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
	"github.com/guildwatch/guildwatch/internal/biz/repo"
	"github.com/guildwatch/guildwatch/internal/conf"
)

// AccessDetector reports false→true view-permission edges on a fixed
// set of watched channels. The reverse edge and unchanged access are
// deliberately not reported.
type AccessDetector struct {
	watch    conf.IDSet
	channels repo.ChannelDirectory
	logger   *slog.Logger
}

// NewAccessDetector creates a new channel-access detector.
func NewAccessDetector(watch conf.IDSet, channels repo.ChannelDirectory, logger *slog.Logger) *AccessDetector {
	return &AccessDetector{
		watch:    watch,
		channels: channels,
		logger:   logger.With("system", "access-detector"),
	}
}

// Enabled reports whether any channels are watched.
func (d *AccessDetector) Enabled() bool {
	return !d.watch.Empty()
}

// Detect diffs the before/after view permission on every watched
// channel and returns one transition per newly visible channel. A
// failure on one channel skips that channel only.
func (d *AccessDetector) Detect(ctx context.Context, ev domain.MemberUpdate) []domain.Transition {
	if !d.Enabled() {
		return nil
	}
	var out []domain.Transition
	for _, channelID := range d.watch.IDs() {
		ch, err := d.channels.Channel(ctx, ev.GuildID, channelID)
		if err != nil {
			continue
		}
		if !ch.AccessWatchable() {
			continue
		}
		beforeCan, err := d.channels.CanView(ctx, ev.GuildID, channelID, ev.Before)
		if err != nil {
			d.logger.Debug("skipping channel, before-permission unresolvable",
				"channel_id", channelID, "err", err)
			continue
		}
		afterCan, err := d.channels.CanView(ctx, ev.GuildID, channelID, ev.After)
		if err != nil {
			d.logger.Debug("skipping channel, after-permission unresolvable",
				"channel_id", channelID, "err", err)
			continue
		}
		if !beforeCan && afterCan {
			out = append(out, domain.Transition{
				Kind:    domain.TransitionChannelAccess,
				Subject: ev.After.Username,
				Channel: ch.Name,
			})
		}
	}
	return out
}

// VoiceTransition pairs a voice transition kind with the channel IDs
// involved; display names are resolved by the caller.
type VoiceTransition struct {
	Kind          domain.TransitionKind
	ChannelID     string
	FromChannelID string
	ToChannelID   string
}

// VoiceDetector classifies voice-channel changes against a fixed
// watch set. It is a pure function of the before/after pair.
type VoiceDetector struct {
	watch conf.IDSet
}

// NewVoiceDetector creates a new voice-presence detector.
func NewVoiceDetector(watch conf.IDSet) *VoiceDetector {
	return &VoiceDetector{watch: watch}
}

// Enabled reports whether any voice channels are watched.
func (d *VoiceDetector) Enabled() bool {
	return !d.watch.Empty()
}

// Detect classifies the update as joined/left/moved relative to the
// watch set. Exactly one outcome can fire; movement entirely outside
// the watch set, or no movement at all, yields none.
func (d *VoiceDetector) Detect(ev domain.VoiceUpdate) (VoiceTransition, bool) {
	if !d.Enabled() || !ev.Moved() {
		return VoiceTransition{}, false
	}
	beforeWatched := ev.BeforeChannelID != "" && d.watch.Contains(ev.BeforeChannelID)
	afterWatched := ev.AfterChannelID != "" && d.watch.Contains(ev.AfterChannelID)
	switch {
	case afterWatched && !beforeWatched:
		return VoiceTransition{Kind: domain.TransitionVoiceJoin, ChannelID: ev.AfterChannelID}, true
	case beforeWatched && !afterWatched:
		return VoiceTransition{Kind: domain.TransitionVoiceLeave, ChannelID: ev.BeforeChannelID}, true
	case beforeWatched && afterWatched:
		return VoiceTransition{
			Kind:          domain.TransitionVoiceMove,
			FromChannelID: ev.BeforeChannelID,
			ToChannelID:   ev.AfterChannelID,
		}, true
	default:
		return VoiceTransition{}, false
	}
}
