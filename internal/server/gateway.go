package server

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
	"github.com/guildwatch/guildwatch/internal/biz/usecase"
	"github.com/guildwatch/guildwatch/internal/service"
)

// GatewayServer owns the gateway session and adapts its event
// payloads into engine calls. All relay decisions live in the engine;
// this layer only converts payloads and keeps per-guild ordering.
type GatewayServer struct {
	session  *discordgo.Session
	engine   *service.Engine
	relay    *usecase.RelayUsecase
	dispatch *dispatcher
	logger   *slog.Logger
}

// NewGatewayServer creates a new gateway server and registers the
// event handlers. Message-content intent is not requested; joins,
// member updates and voice states are enough.
func NewGatewayServer(session *discordgo.Session, engine *service.Engine, relay *usecase.RelayUsecase, logger *slog.Logger) *GatewayServer {
	s := &GatewayServer{
		session:  session,
		engine:   engine,
		relay:    relay,
		dispatch: newDispatcher(logger.With("system", "dispatch")),
		logger:   logger.With("system", "gateway"),
	}

	// Handlers must observe gateway arrival order or the per-guild
	// queues serialize a wrong order. Dispatching synchronously is
	// safe here: enqueue never blocks, so the gateway reader is not
	// held up by slow relay work.
	session.SyncEvents = true
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildVoiceStates

	session.AddHandler(s.onReady)
	session.AddHandler(s.onMemberJoin)
	session.AddHandler(s.onMemberUpdate)
	session.AddHandler(s.onVoiceUpdate)

	return s
}

// Start opens the gateway connection.
func (s *GatewayServer) Start() error {
	return s.session.Open()
}

// Stop closes the gateway connection.
func (s *GatewayServer) Stop() {
	if err := s.session.Close(); err != nil {
		s.logger.Error("gateway close failed", "err", err)
	}
}

// onReady logs startup diagnostics: who we are, which guilds we see,
// and whether the relay channel resolves. The probe shares the
// dispatcher's cache slot, so the first relayed line skips the fetch.
func (s *GatewayServer) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	guildIDs := make([]string, 0, len(r.Guilds))
	for _, g := range r.Guilds {
		guildIDs = append(guildIDs, g.ID)
	}
	s.logger.Info("ready", "user", r.User.Username, "guild_count", len(r.Guilds), "guild_ids", guildIDs)

	ch, err := s.relay.Resolve(context.Background())
	if err != nil {
		s.logger.Error("relay channel not found at startup", "err", err)
		return
	}
	s.logger.Info("relay channel resolved", "channel_id", ch.ID, "name", ch.Name)
}

func (s *GatewayServer) onMemberJoin(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil {
		return
	}
	ev := domain.MemberJoin{
		GuildID: m.GuildID,
		Member:  memberSnapshot(m.Member),
	}
	s.dispatch.enqueue(ev.GuildID, func() {
		s.engine.HandleMemberJoin(context.Background(), ev)
	})
}

func (s *GatewayServer) onMemberUpdate(_ *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	if m.Member == nil || m.User == nil {
		return
	}
	// Without a cached before state there is no edge to establish.
	if m.BeforeUpdate == nil {
		s.logger.Debug("member update without before state", "guild_id", m.GuildID, "user_id", m.User.ID)
		return
	}
	ev := domain.MemberUpdate{
		GuildID: m.GuildID,
		Before:  memberSnapshot(m.BeforeUpdate),
		After:   memberSnapshot(m.Member),
	}
	s.dispatch.enqueue(ev.GuildID, func() {
		s.engine.HandleMemberUpdate(context.Background(), ev)
	})
}

func (s *GatewayServer) onVoiceUpdate(sess *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil {
		return
	}
	ev := domain.VoiceUpdate{
		GuildID:        v.GuildID,
		Member:         s.voiceMemberSnapshot(sess, v),
		AfterChannelID: v.ChannelID,
	}
	if v.BeforeUpdate != nil {
		ev.BeforeChannelID = v.BeforeUpdate.ChannelID
	}
	s.dispatch.enqueue(ev.GuildID, func() {
		s.engine.HandleVoiceUpdate(context.Background(), ev)
	})
}

// voiceMemberSnapshot builds a member snapshot for a voice update,
// which does not always carry the member object.
func (s *GatewayServer) voiceMemberSnapshot(sess *discordgo.Session, v *discordgo.VoiceStateUpdate) domain.MemberSnapshot {
	if v.Member != nil && v.Member.User != nil {
		return memberSnapshot(v.Member)
	}
	if m, err := sess.State.Member(v.GuildID, v.UserID); err == nil && m.User != nil {
		return memberSnapshot(m)
	}
	return domain.MemberSnapshot{UserID: v.UserID, Username: v.UserID}
}

func memberSnapshot(m *discordgo.Member) domain.MemberSnapshot {
	return domain.MemberSnapshot{
		UserID:   m.User.ID,
		Username: m.User.Username,
		RoleIDs:  m.Roles,
	}
}
