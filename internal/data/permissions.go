package data

import (
	"slices"

	"github.com/bwmarrin/discordgo"
)

// snapshotPermissions computes the effective permissions a member
// snapshot has on a channel, from the guild role table and the
// channel's permission overwrites. The role set comes from the
// snapshot, not from the live member cache, which is what lets an
// update event's before and after states disagree.
//
// Order matters: base role union, administrator escalation, the
// @everyone overwrite, role overwrites, then the member overwrite.
func snapshotPermissions(guild *discordgo.Guild, channel *discordgo.Channel, userID string, roleIDs []string) int64 {
	if userID == guild.OwnerID {
		return discordgo.PermissionAll
	}

	var perms int64
	for _, role := range guild.Roles {
		// The @everyone role shares the guild ID.
		if role.ID == guild.ID {
			perms |= role.Permissions
			break
		}
	}
	for _, role := range guild.Roles {
		if slices.Contains(roleIDs, role.ID) {
			perms |= role.Permissions
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}

	for _, ow := range channel.PermissionOverwrites {
		if ow.Type == discordgo.PermissionOverwriteTypeRole && ow.ID == guild.ID {
			perms &^= ow.Deny
			perms |= ow.Allow
			break
		}
	}

	var allows, denies int64
	for _, ow := range channel.PermissionOverwrites {
		if ow.Type == discordgo.PermissionOverwriteTypeRole && slices.Contains(roleIDs, ow.ID) {
			denies |= ow.Deny
			allows |= ow.Allow
		}
	}
	perms &^= denies
	perms |= allows

	for _, ow := range channel.PermissionOverwrites {
		if ow.Type == discordgo.PermissionOverwriteTypeMember && ow.ID == userID {
			perms &^= ow.Deny
			perms |= ow.Allow
			break
		}
	}

	return perms
}
