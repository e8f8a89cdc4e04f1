package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"

	"github.com/guildwatch/guildwatch/internal/biz/domain"
)

// Fake repositories shared by the usecase tests.

var errNotThere = errors.New("no such channel")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeMembers struct {
	result domain.MembershipResult
	calls  int
}

func (f *fakeMembers) Membership(ctx context.Context, guildID, userID string) domain.MembershipResult {
	f.calls++
	return f.result
}

// fakeChannels grants view permission on a channel to snapshots that
// carry the role "viewer:<channelID>".
type fakeChannels struct {
	channels map[string]*domain.Channel
	viewErr  map[string]error
}

func (f *fakeChannels) Channel(ctx context.Context, guildID, channelID string) (*domain.Channel, error) {
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, errNotThere
	}
	return ch, nil
}

func (f *fakeChannels) CanView(ctx context.Context, guildID, channelID string, member domain.MemberSnapshot) (bool, error) {
	if err := f.viewErr[channelID]; err != nil {
		return false, err
	}
	return slices.Contains(member.RoleIDs, "viewer:"+channelID), nil
}

type fakeMessenger struct {
	channel    *domain.Channel
	resolveErr error
	sendErr    error
	resolves   int
	sent       []string
}

func (f *fakeMessenger) ResolveChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	f.resolves++
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.channel, nil
}

func (f *fakeMessenger) Send(ctx context.Context, channelID, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, text)
	return nil
}
