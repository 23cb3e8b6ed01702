package relay

import (
	"github.com/matterbridge/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/meowkat/go-discord-relay/dstate"
	"github.com/meowkat/go-discord-relay/transmitter"
)

// discordBot is the Discord-side collaborator: one session to one
// guild, plus the impersonation pool for webhook sends.
type discordBot struct {
	*discordgo.Session

	relay       *Relay
	guildID     string
	transmitter *transmitter.Transmitter
}

func newDiscord(r *Relay, botToken, guildID string) (*discordBot, error) {
	// Create a new Discord session using the provided bot token.
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, errors.Wrap(err, "could not create discord session")
	}

	// The impersonation pool is built once, before the session opens,
	// and is read-only afterwards.
	tr, err := transmitter.New(session, r.Config.Webhooks)
	if err != nil {
		return nil, errors.Wrap(err, "could not create webhook transmitter")
	}

	d := &discordBot{
		Session:     session,
		relay:       r,
		guildID:     guildID,
		transmitter: tr,
	}

	// These handlers are all fired in separate goroutines
	session.AddHandler(d.onReady)
	session.AddHandler(d.onMessageCreate)

	return d, nil
}

// onReady requests the guild member list, which fills the State used
// for avatar lookups.
func (d *discordBot) onReady(s *discordgo.Session, m *discordgo.Ready) {
	if err := s.RequestGuildMembers(d.guildID, "", 0, false); err != nil {
		log.Warnln(errors.Wrap(err, "could not request guild members").Error())
	}
}

func (d *discordBot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	msg := Message{
		Author:   m.Author.Username,
		AuthorID: m.Author.ID,
		Body:     m.ContentWithMentionsReplaced(),
		Raw:      m.Content,
		Webhook:  m.WebhookID != "",
	}

	// Webhook messages carry their display name themselves; everyone
	// else is presented under their guild nickname when they have one.
	if !msg.Webhook && m.Member != nil && m.Member.Nick != "" {
		msg.Author = m.Member.Nick
	}

	for _, attachment := range m.Attachments {
		msg.Attachments = append(msg.Attachments, attachment.URL)
	}

	d.relay.HandleDiscordMessage(m.ChannelID, msg)
}

func (d *discordBot) SelfID() string {
	if user := d.State.User; user != nil {
		return user.ID
	}
	return ""
}

func (d *discordBot) SendMessage(channelID, content string) error {
	_, err := d.ChannelMessageSend(channelID, content)
	return err
}

func (d *discordBot) SendImpersonated(channelID string, params *discordgo.WebhookParams) error {
	return d.transmitter.Send(channelID, params)
}

func (d *discordBot) HasImpersonation(channelID string) bool {
	return d.transmitter.Has(channelID)
}

// AvatarURL finds an avatar for an IRC nickname by scanning the guild
// membership. Username matches win over guild nicknames; first match
// wins; no match means no avatar.
func (d *discordBot) AvatarURL(nick string) string {
	guild, err := dstate.Guild(d.Session, d.guildID)
	if err != nil {
		return ""
	}

	for _, member := range guild.Members {
		if member.User != nil && member.User.Username == nick {
			return member.User.AvatarURL("")
		}
	}
	for _, member := range guild.Members {
		if member.Nick == nick && member.User != nil {
			return member.User.AvatarURL("")
		}
	}

	return ""
}

func (d *discordBot) ChannelTitle(channelID string) (string, string) {
	var channelName, guildName string

	if channel, err := dstate.Channel(d.Session, channelID); err == nil {
		channelName = channel.Name
	}
	if guild, err := dstate.Guild(d.Session, d.guildID); err == nil {
		guildName = guild.Name
	}

	return channelName, guildName
}
