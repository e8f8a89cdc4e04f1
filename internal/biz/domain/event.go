package domain

// MemberSnapshot is a point-in-time view of a guild member, as carried
// by gateway payloads. Update events deliver two of these (before and
// after) for the same user in the same guild.
type MemberSnapshot struct {
	UserID   string
	Username string
	RoleIDs  []string
}

// MemberJoin is a member-join gateway event for one guild.
type MemberJoin struct {
	GuildID string
	Member  MemberSnapshot
}

// MemberUpdate is a member-update gateway event carrying the member
// state before and after the change.
type MemberUpdate struct {
	GuildID string
	Before  MemberSnapshot
	After   MemberSnapshot
}

// VoiceUpdate is a voice-state-update gateway event. An empty channel
// ID means the member is not in voice on that side of the update.
type VoiceUpdate struct {
	GuildID         string
	Member          MemberSnapshot
	BeforeChannelID string
	AfterChannelID  string
}

// Moved reports whether the update changed the occupied voice channel
// at all. Mute/deafen-only updates keep the channel and never relay.
func (v VoiceUpdate) Moved() bool {
	return v.BeforeChannelID != v.AfterChannelID
}
