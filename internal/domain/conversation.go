package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ConversationKey scopes a login session to one channel of one guild.
type ConversationKey struct {
	GuildID   uint64
	ChannelID uint64
}

func NewConversationKey(guildID, channelID uint64) ConversationKey {
	return ConversationKey{GuildID: guildID, ChannelID: channelID}
}

// String renders the persisted "{guild}_{channel}" form.
func (k ConversationKey) String() string {
	return strconv.FormatUint(k.GuildID, 10) + "_" + strconv.FormatUint(k.ChannelID, 10)
}

func ParseConversationKey(raw string) (ConversationKey, error) {
	guild, channel, ok := strings.Cut(strings.TrimSpace(raw), "_")
	if !ok {
		return ConversationKey{}, fmt.Errorf("conversation key %q: missing separator", raw)
	}

	guildID, err := strconv.ParseUint(guild, 10, 64)
	if err != nil {
		return ConversationKey{}, fmt.Errorf("conversation key %q: guild id: %w", raw, err)
	}
	channelID, err := strconv.ParseUint(channel, 10, 64)
	if err != nil {
		return ConversationKey{}, fmt.Errorf("conversation key %q: channel id: %w", raw, err)
	}

	return ConversationKey{GuildID: guildID, ChannelID: channelID}, nil
}
