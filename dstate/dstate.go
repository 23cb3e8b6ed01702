// Package dstate provides helpers for discordgo that first try the State, and then fall back on an endpoint request.
package dstate

import "github.com/matterbridge/discordgo"

func Channel(s *discordgo.Session, channelID string) (*discordgo.Channel, error) {
	if ch, err := s.State.Channel(channelID); err == nil {
		return ch, err
	}

	return s.Channel(channelID)
}

func Guild(s *discordgo.Session, guildID string) (*discordgo.Guild, error) {
	if g, err := s.State.Guild(guildID); err == nil {
		return g, err
	}

	return s.Guild(guildID)
}
