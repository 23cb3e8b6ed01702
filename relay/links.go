package relay

import (
	"strings"

	"github.com/pkg/errors"
)

// A Link ties one IRC channel to one Discord channel.
type Link struct {
	IRCChannel     string
	DiscordChannel string
}

// Links is the room link table. It is built once at startup and never
// mutated; duplicate keys are allowed and resolve to the first entry
// in configuration order.
type Links []Link

// ParseLinks builds a link table from config entries of the form
// "#channel:discordid". Order is preserved.
func ParseLinks(entries []string) (Links, error) {
	links := make(Links, 0, len(entries))

	for _, entry := range entries {
		sep := strings.LastIndex(entry, ":")
		if sep < 1 || sep == len(entry)-1 {
			return nil, errors.Errorf("link %q is invalid, expected \"#channel:discordid\"", entry)
		}

		links = append(links, Link{
			IRCChannel:     entry[:sep],
			DiscordChannel: entry[sep+1:],
		})
	}

	return links, nil
}

// DiscordChannel returns the Discord channel linked to an IRC channel.
// IRC channel names are matched case-insensitively.
func (l Links) DiscordChannel(ircChannel string) (string, bool) {
	for _, link := range l {
		if strings.EqualFold(link.IRCChannel, ircChannel) {
			return link.DiscordChannel, true
		}
	}
	return "", false
}

// IRCChannel returns the IRC channel linked to a Discord channel.
func (l Links) IRCChannel(discordChannel string) (string, bool) {
	for _, link := range l {
		if link.DiscordChannel == discordChannel {
			return link.IRCChannel, true
		}
	}
	return "", false
}

// IRCChannels lists every IRC channel in the table, in order.
func (l Links) IRCChannels() []string {
	channels := make([]string, 0, len(l))
	for _, link := range l {
		channels = append(channels, link.IRCChannel)
	}
	return channels
}
