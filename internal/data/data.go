package data

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/guildwatch/guildwatch/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	Members   repo.MemberDirectory
	Guilds    repo.GuildDirectory
	Channels  repo.ChannelDirectory
	Messenger repo.Messenger
}

// NewRepositories creates all repositories on top of one session.
func NewRepositories(session *discordgo.Session, logger *slog.Logger) *Repositories {
	d := NewDiscordRepo(session, logger)
	return &Repositories{
		Members:   d,
		Guilds:    d,
		Channels:  d,
		Messenger: d,
	}
}
