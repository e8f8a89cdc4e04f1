package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	_ "github.com/joho/godotenv/autoload"
	_ "go.uber.org/automaxprocs"

	"github.com/guildwatch/guildwatch/internal/biz/usecase"
	"github.com/guildwatch/guildwatch/internal/conf"
	"github.com/guildwatch/guildwatch/internal/data"
	"github.com/guildwatch/guildwatch/internal/server"
	"github.com/guildwatch/guildwatch/internal/service"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "guildwatch",
		Usage:   "relay guild membership and access transitions into one channel",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "discord-token",
			Usage:   "bot token for the gateway session",
			EnvVars: []string{"DISCORD_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "relay-channel-id",
			Usage:   "channel that receives every relay line",
			EnvVars: []string{"RELAY_CHANNEL_ID"},
		},
		&cli.StringFlag{
			Name:    "operator-id",
			Usage:   "operator user ID; guilds without the operator never relay",
			EnvVars: []string{"MY_USER_ID"},
		},
		&cli.StringFlag{
			Name:    "watch-guild-ids",
			Usage:   "comma-separated guild allowlist, empty watches all",
			EnvVars: []string{"WATCH_GUILD_IDS"},
		},
		&cli.StringFlag{
			Name:    "watch-text-channel-ids",
			Usage:   "comma-separated channels for the access-gained watcher",
			EnvVars: []string{"WATCH_TEXT_CHANNEL_IDS"},
		},
		&cli.StringFlag{
			Name:    "watch-voice-channel-ids",
			Usage:   "comma-separated channels for the voice watcher",
			EnvVars: []string{"WATCH_VOICE_CHANNEL_IDS"},
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "liveness probe port",
			Value:   8080,
			EnvVars: []string{"PORT"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "enable debug logging",
			EnvVars: []string{"DEBUG"},
		},
	}

	app.Action = runRelay
	return app.Run(args)
}

func runRelay(cctx *cli.Context) error {
	cfg := &conf.Config{
		Token:                cctx.String("discord-token"),
		OperatorID:           cctx.String("operator-id"),
		RelayChannelID:       cctx.String("relay-channel-id"),
		WatchGuildIDs:        conf.ParseIDSet(cctx.String("watch-guild-ids")),
		WatchTextChannelIDs:  conf.ParseIDSet(cctx.String("watch-text-channel-ids")),
		WatchVoiceChannelIDs: conf.ParseIDSet(cctx.String("watch-voice-channel-ids")),
		HealthAddr:           fmt.Sprintf(":%d", cctx.Int("port")),
		Debug:                cctx.Bool("debug"),
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	repos := data.NewRepositories(session, logger)
	scope := usecase.NewScopeUsecase(cfg.OperatorID, cfg.WatchGuildIDs, repos.Members, logger)
	access := usecase.NewAccessDetector(cfg.WatchTextChannelIDs, repos.Channels, logger)
	voice := usecase.NewVoiceDetector(cfg.WatchVoiceChannelIDs)
	relay := usecase.NewRelayUsecase(repos.Messenger, cfg.RelayChannelID, logger)
	engine := service.NewEngine(scope, access, voice, relay, repos.Guilds, repos.Channels, logger)

	gateway := server.NewGatewayServer(session, engine, relay, logger)
	health := server.NewHealthServer(cfg.HealthAddr, logger)

	go func() {
		if err := health.Start(); err != nil {
			logger.Error("health server failed", "err", err)
		}
	}()

	if err := gateway.Start(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	logger.Info("guildwatch started",
		"watched_guilds", len(cfg.WatchGuildIDs),
		"watched_text_channels", len(cfg.WatchTextChannelIDs),
		"watched_voice_channels", len(cfg.WatchVoiceChannelIDs))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	gateway.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := health.Shutdown(ctx); err != nil {
		logger.Error("health server shutdown failed", "err", err)
	}
	return nil
}
