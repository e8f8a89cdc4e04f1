package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
	"github.com/guildwatch/guildwatch/internal/biz/repo"
)

// DiscordRepo backs every repository interface with one discordgo
// session: the gateway-fed state cache answers first, the REST API is
// the single fallback per lookup.
type DiscordRepo struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// NewDiscordRepo creates a new Discord-backed repository.
func NewDiscordRepo(session *discordgo.Session, logger *slog.Logger) *DiscordRepo {
	return &DiscordRepo{
		session: session,
		logger:  logger.With("system", "discord-repo"),
	}
}

// Membership implements repo.MemberDirectory. Cache hit proves
// membership without a remote call; on a miss exactly one fetch is
// attempted and every failure folds into the fail-closed enum.
func (r *DiscordRepo) Membership(ctx context.Context, guildID, userID string) domain.MembershipResult {
	if m, err := r.session.State.Member(guildID, userID); err == nil && m != nil {
		return domain.MembershipFound
	}
	if _, err := r.session.GuildMember(guildID, userID, discordgo.WithContext(ctx)); err != nil {
		return classifyMembership(err)
	}
	return domain.MembershipFound
}

func classifyMembership(err error) domain.MembershipResult {
	var rerr *discordgo.RESTError
	if !errors.As(err, &rerr) {
		return domain.MembershipTransportError
	}
	if rerr.Message != nil {
		switch rerr.Message.Code {
		case discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser, discordgo.ErrCodeUnknownGuild:
			return domain.MembershipNotFound
		case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
			return domain.MembershipDenied
		}
	}
	if rerr.Response != nil {
		switch rerr.Response.StatusCode {
		case http.StatusNotFound:
			return domain.MembershipNotFound
		case http.StatusForbidden:
			return domain.MembershipDenied
		}
	}
	return domain.MembershipTransportError
}

// GuildName implements repo.GuildDirectory. Cache only; an unknown
// guild renders as its raw ID rather than failing a notification.
func (r *DiscordRepo) GuildName(ctx context.Context, guildID string) string {
	if g, err := r.session.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	return guildID
}

// Channel implements repo.ChannelDirectory.
func (r *DiscordRepo) Channel(ctx context.Context, guildID, channelID string) (*domain.Channel, error) {
	ch, err := r.rawChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch.GuildID != guildID {
		return nil, fmt.Errorf("channel %s not in guild %s: %w", channelID, guildID, repo.ErrNotFound)
	}
	return &domain.Channel{
		ID:      ch.ID,
		GuildID: ch.GuildID,
		Name:    ch.Name,
		Kind:    channelKind(ch.Type),
	}, nil
}

// CanView implements repo.ChannelDirectory. The permission is derived
// from the guild role table and the channel overwrites using the role
// set of the supplied snapshot, so before and after states of one
// update are evaluated independently of the live cache.
func (r *DiscordRepo) CanView(ctx context.Context, guildID, channelID string, member domain.MemberSnapshot) (bool, error) {
	guild, err := r.session.State.Guild(guildID)
	if err != nil {
		return false, fmt.Errorf("guild %s: %w", guildID, repo.ErrNotFound)
	}
	ch, err := r.rawChannel(ctx, channelID)
	if err != nil {
		return false, err
	}
	perms := snapshotPermissions(guild, ch, member.UserID, member.RoleIDs)
	return perms&discordgo.PermissionViewChannel != 0, nil
}

// ResolveChannel implements repo.Messenger.
func (r *DiscordRepo) ResolveChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	ch, err := r.rawChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return &domain.Channel{
		ID:      ch.ID,
		GuildID: ch.GuildID,
		Name:    ch.Name,
		Kind:    channelKind(ch.Type),
	}, nil
}

// Send implements repo.Messenger.
func (r *DiscordRepo) Send(ctx context.Context, channelID, text string) error {
	if _, err := r.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return classifyError(err, fmt.Sprintf("send to channel %s", channelID))
	}
	return nil
}

// rawChannel resolves a channel with its overwrite data, cache first,
// then one REST fetch.
func (r *DiscordRepo) rawChannel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if ch, err := r.session.State.Channel(channelID); err == nil {
		return ch, nil
	}
	ch, err := r.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, classifyError(err, fmt.Sprintf("fetch channel %s", channelID))
	}
	return ch, nil
}

// classifyError maps platform REST failures onto the repo sentinels.
func classifyError(err error, op string) error {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) {
		if rerr.Message != nil {
			switch rerr.Message.Code {
			case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownGuild, discordgo.ErrCodeUnknownMember:
				return fmt.Errorf("%s: %w", op, repo.ErrNotFound)
			case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
				return fmt.Errorf("%s: %w", op, repo.ErrForbidden)
			}
		}
		if rerr.Response != nil {
			switch rerr.Response.StatusCode {
			case http.StatusNotFound:
				return fmt.Errorf("%s: %w", op, repo.ErrNotFound)
			case http.StatusForbidden:
				return fmt.Errorf("%s: %w", op, repo.ErrForbidden)
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func channelKind(t discordgo.ChannelType) domain.ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return domain.ChannelText
	case discordgo.ChannelTypeGuildNews:
		return domain.ChannelAnnouncement
	case discordgo.ChannelTypeGuildForum:
		return domain.ChannelForum
	case discordgo.ChannelTypeGuildCategory:
		return domain.ChannelCategory
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		return domain.ChannelVoice
	default:
		return domain.ChannelOther
	}
}
