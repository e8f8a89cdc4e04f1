package conf

import (
	"sort"
	"strings"
)

// Config is the process-lifetime watch configuration. It is built
// once at startup and never mutated afterwards.
type Config struct {
	// Token is the bot token used for the gateway session.
	Token string

	// OperatorID is the operator's user ID. The operator must be a
	// member of a guild for any event from it to relay.
	OperatorID string

	// RelayChannelID is the single output channel for all relay lines.
	RelayChannelID string

	// WatchGuildIDs restricts relaying to these guilds. Empty means
	// every guild the operator is in.
	WatchGuildIDs IDSet

	// WatchTextChannelIDs enables the channel-access watcher for these
	// channels. Empty disables the watcher.
	WatchTextChannelIDs IDSet

	// WatchVoiceChannelIDs enables the voice watcher for these
	// channels. Empty disables the watcher.
	WatchVoiceChannelIDs IDSet

	// HealthAddr is the listen address of the liveness probe server.
	HealthAddr string

	// Debug enables debug-level logging.
	Debug bool
}

// IDSet is a set of snowflake IDs.
type IDSet map[string]struct{}

// ParseIDSet parses a comma-separated list of snowflake IDs. Entries
// that are not purely numeric are dropped, matching how the platform
// formats IDs.
func ParseIDSet(raw string) IDSet {
	set := make(IDSet)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if !isSnowflake(id) {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// Contains reports set membership.
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Empty reports whether the set has no entries. An empty watch set
// disables the corresponding optional feature.
func (s IDSet) Empty() bool {
	return len(s) == 0
}

// IDs returns the set contents in stable (ascending) order.
func (s IDSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks the required fields. A failure here is the only
// startup-fatal condition in the process.
func (c *Config) Validate() error {
	if c.Token == "" {
		return &ConfigError{Field: "DISCORD_TOKEN", Message: "required"}
	}
	if !isSnowflake(c.RelayChannelID) {
		return &ConfigError{Field: "RELAY_CHANNEL_ID", Message: "required numeric channel ID"}
	}
	if !isSnowflake(c.OperatorID) {
		return &ConfigError{Field: "MY_USER_ID", Message: "required numeric user ID"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
