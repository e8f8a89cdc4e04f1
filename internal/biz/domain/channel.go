package domain

// ChannelKind classifies a guild channel by what the relay can do
// with it.
type ChannelKind string

const (
	ChannelText         ChannelKind = "text"
	ChannelAnnouncement ChannelKind = "announcement"
	ChannelForum        ChannelKind = "forum"
	ChannelCategory     ChannelKind = "category"
	ChannelVoice        ChannelKind = "voice"
	ChannelOther        ChannelKind = "other"
)

// Channel is a resolved guild channel reference.
type Channel struct {
	ID      string
	GuildID string
	Name    string
	Kind    ChannelKind
}

// Postable reports whether a plain text message can be sent to the
// channel directly.
func (c *Channel) Postable() bool {
	return c.Kind == ChannelText || c.Kind == ChannelAnnouncement
}

// AccessWatchable reports whether the channel kind participates in
// view-permission diffing. Voice channels have their own watcher.
func (c *Channel) AccessWatchable() bool {
	switch c.Kind {
	case ChannelText, ChannelAnnouncement, ChannelForum, ChannelCategory:
		return true
	default:
		return false
	}
}
