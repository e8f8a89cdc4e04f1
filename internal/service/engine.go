package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
	"github.com/guildwatch/guildwatch/internal/biz/repo"
	"github.com/guildwatch/guildwatch/internal/biz/usecase"
)

// Engine is the event filter and relay pipeline: scope filter, the
// matching transition detector, line formatting, dispatch. Every
// handler is self-contained and never returns an error to the gateway
// loop.
type Engine struct {
	scope    *usecase.ScopeUsecase
	access   *usecase.AccessDetector
	voice    *usecase.VoiceDetector
	relay    *usecase.RelayUsecase
	guilds   repo.GuildDirectory
	channels repo.ChannelDirectory
	logger   *slog.Logger

	// now is swapped in tests to pin timestamps.
	now func() time.Time
}

// NewEngine creates a new engine.
func NewEngine(
	scope *usecase.ScopeUsecase,
	access *usecase.AccessDetector,
	voice *usecase.VoiceDetector,
	relay *usecase.RelayUsecase,
	guilds repo.GuildDirectory,
	channels repo.ChannelDirectory,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		scope:    scope,
		access:   access,
		voice:    voice,
		relay:    relay,
		guilds:   guilds,
		channels: channels,
		logger:   logger.With("system", "engine"),
		now:      time.Now,
	}
}

// HandleMemberJoin relays every join in a watched guild. The arrival
// of the event is itself the qualifying transition.
func (e *Engine) HandleMemberJoin(ctx context.Context, ev domain.MemberJoin) {
	eventsReceivedCounter.WithLabelValues("member_join").Inc()
	if !e.scope.IsWatched(ctx, ev.GuildID) {
		scopeSuppressedCounter.WithLabelValues("member_join").Inc()
		return
	}
	e.dispatch(ctx, domain.Transition{
		Kind:    domain.TransitionJoin,
		Subject: ev.Member.Username,
		Guild:   e.guilds.GuildName(ctx, ev.GuildID),
	})
}

// HandleMemberUpdate diffs view permissions on the watched text
// channels and relays one line per newly visible channel.
func (e *Engine) HandleMemberUpdate(ctx context.Context, ev domain.MemberUpdate) {
	eventsReceivedCounter.WithLabelValues("member_update").Inc()
	if !e.access.Enabled() {
		return
	}
	if !e.scope.IsWatched(ctx, ev.GuildID) {
		scopeSuppressedCounter.WithLabelValues("member_update").Inc()
		return
	}
	guildName := e.guilds.GuildName(ctx, ev.GuildID)
	for _, t := range e.access.Detect(ctx, ev) {
		t.Guild = guildName
		e.dispatch(ctx, t)
	}
}

// HandleVoiceUpdate classifies voice-channel movement against the
// watch set and relays the single resulting transition, if any.
func (e *Engine) HandleVoiceUpdate(ctx context.Context, ev domain.VoiceUpdate) {
	eventsReceivedCounter.WithLabelValues("voice_update").Inc()
	if !e.voice.Enabled() {
		return
	}
	if !e.scope.IsWatched(ctx, ev.GuildID) {
		scopeSuppressedCounter.WithLabelValues("voice_update").Inc()
		return
	}
	vt, ok := e.voice.Detect(ev)
	if !ok {
		return
	}
	t := domain.Transition{
		Kind:    vt.Kind,
		Subject: ev.Member.Username,
		Guild:   e.guilds.GuildName(ctx, ev.GuildID),
	}
	switch vt.Kind {
	case domain.TransitionVoiceMove:
		t.FromChannel = e.channelLabel(ctx, ev.GuildID, vt.FromChannelID)
		t.ToChannel = e.channelLabel(ctx, ev.GuildID, vt.ToChannelID)
	default:
		t.Channel = e.channelLabel(ctx, ev.GuildID, vt.ChannelID)
	}
	e.dispatch(ctx, t)
}

func (e *Engine) dispatch(ctx context.Context, t domain.Transition) {
	line := t.Line(e.now())
	if e.relay.Relay(ctx, line) {
		transitionsRelayedCounter.WithLabelValues(string(t.Kind)).Inc()
		return
	}
	relayDroppedCounter.Inc()
}

// channelLabel resolves a channel's display name, falling back to the
// raw ID so a stale cache never suppresses a voice notification.
func (e *Engine) channelLabel(ctx context.Context, guildID, channelID string) string {
	ch, err := e.channels.Channel(ctx, guildID, channelID)
	if err != nil {
		e.logger.Debug("voice channel name unresolved", "channel_id", channelID, "err", err)
		return channelID
	}
	return ch.Name
}
