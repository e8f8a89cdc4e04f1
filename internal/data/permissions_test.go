package data

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func permGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "1",
		OwnerID: "100",
		Roles: []*discordgo.Role{
			// @everyone shares the guild ID.
			{ID: "1", Permissions: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages},
			{ID: "10", Permissions: discordgo.PermissionAdministrator},
			{ID: "11", Permissions: discordgo.PermissionManageMessages},
		},
	}
}

func canView(g *discordgo.Guild, ch *discordgo.Channel, userID string, roles []string) bool {
	return snapshotPermissions(g, ch, userID, roles)&discordgo.PermissionViewChannel != 0
}

func TestSnapshotPermissions_EveryoneBase(t *testing.T) {
	ch := &discordgo.Channel{ID: "42", GuildID: "1"}
	assert.True(t, canView(permGuild(), ch, "2", nil))
}

func TestSnapshotPermissions_EveryoneOverwriteDeny(t *testing.T) {
	ch := &discordgo.Channel{ID: "42", GuildID: "1", PermissionOverwrites: []*discordgo.PermissionOverwrite{
		{ID: "1", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
	}}
	assert.False(t, canView(permGuild(), ch, "2", nil))
}

func TestSnapshotPermissions_RoleOverwriteRestores(t *testing.T) {
	// The gained-access shape: hidden from @everyone, role 11 allowed.
	ch := &discordgo.Channel{ID: "42", GuildID: "1", PermissionOverwrites: []*discordgo.PermissionOverwrite{
		{ID: "1", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: "11", Type: discordgo.PermissionOverwriteTypeRole, Allow: discordgo.PermissionViewChannel},
	}}
	g := permGuild()
	assert.False(t, canView(g, ch, "2", nil))
	assert.True(t, canView(g, ch, "2", []string{"11"}))
}

func TestSnapshotPermissions_MemberOverwrite(t *testing.T) {
	ch := &discordgo.Channel{ID: "42", GuildID: "1", PermissionOverwrites: []*discordgo.PermissionOverwrite{
		{ID: "1", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: "2", Type: discordgo.PermissionOverwriteTypeMember, Allow: discordgo.PermissionViewChannel},
	}}
	g := permGuild()
	assert.True(t, canView(g, ch, "2", nil))
	assert.False(t, canView(g, ch, "3", nil))
}

func TestSnapshotPermissions_AdministratorBypassesOverwrites(t *testing.T) {
	ch := &discordgo.Channel{ID: "42", GuildID: "1", PermissionOverwrites: []*discordgo.PermissionOverwrite{
		{ID: "1", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
	}}
	assert.True(t, canView(permGuild(), ch, "2", []string{"10"}))
}

func TestSnapshotPermissions_OwnerBypassesEverything(t *testing.T) {
	ch := &discordgo.Channel{ID: "42", GuildID: "1", PermissionOverwrites: []*discordgo.PermissionOverwrite{
		{ID: "1", Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionAll},
	}}
	assert.True(t, canView(permGuild(), ch, "100", nil))
}
