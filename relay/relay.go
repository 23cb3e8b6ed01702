// Package relay implements the message-routing core that bridges one
// IRC network and one Discord guild. Inbound events from either side
// are routed through the room link table, dressed up with the original
// author's identity, and re-emitted on the other network.
package relay

import (
	"github.com/gobwas/glob"
	"github.com/matterbridge/discordgo"
	"github.com/pkg/errors"

	"github.com/meowkat/go-discord-relay/pastegg"
)

// Config to be passed to New
type Config struct {
	DiscordBotToken, GuildID string

	IRCServer     string
	IRCServerPass string
	IRCNick       string
	IRCUser       string

	// Links is the ordered room link table.
	Links Links

	// Webhooks maps Discord channel IDs to webhook endpoint URLs used
	// for impersonated sends. Channels absent here fall back to plain
	// bot messages.
	Webhooks map[string]string

	// PasteEndpoint overrides the paste.gg API endpoint; empty means
	// the public service. PasteKey is an optional API key.
	PasteEndpoint string
	PasteKey      string

	// NoTLS controls whether to use TLS at all when connecting to the IRC server
	NoTLS bool

	// InsecureSkipVerify controls whether a client verifies the
	// server's certificate chain and host name.
	// This should be used only for testing.
	InsecureSkipVerify bool

	// IRCIgnores are hostmask globs whose messages are never relayed.
	IRCIgnores []glob.Glob

	// filters applied to message bodies per direction
	IRCFilteredMessages     []glob.Glob
	DiscordFilteredMessages []glob.Glob

	Debug bool
}

// ircConn is what the engine needs from the IRC side.
type ircConn interface {
	Privmsg(target, message string)
	CurrentNick() string
	MaskLength() int
	InChannel(channel string) bool
}

// discordConn is what the engine needs from the Discord side.
type discordConn interface {
	SelfID() string
	SendMessage(channelID, content string) error
	SendImpersonated(channelID string, params *discordgo.WebhookParams) error
	HasImpersonation(channelID string) bool
	AvatarURL(nick string) string
	ChannelTitle(channelID string) (channel, guild string)
}

// paster publishes oversized content out of band.
type paster interface {
	Submit(title string, files []pastegg.File) (string, error)
}

// A Relay represents a bridging between an IRC server and channels in
// a Discord guild.
type Relay struct {
	Config *Config

	links   Links
	irc     ircConn
	discord discordConn
	pastes  paster

	discordBot  *discordBot
	ircListener *ircListener
}

// New Relay
func New(conf *Config) (*Relay, error) {
	if conf.IRCServer == "" {
		return nil, errors.New("missing server name")
	}
	if len(conf.Links) == 0 {
		return nil, errors.New("no room links configured")
	}

	r := &Relay{
		Config: conf,
		links:  conf.Links,
		pastes: pastegg.New(conf.PasteEndpoint, conf.PasteKey),
	}

	var err error
	r.discordBot, err = newDiscord(r, conf.DiscordBotToken, conf.GuildID)
	if err != nil {
		return nil, errors.Wrap(err, "could not create discord bot")
	}
	r.discord = r.discordBot

	r.ircListener = newIRCListener(r)
	r.irc = r.ircListener

	return r, nil
}

// Open all the connections required to run the relay
func (r *Relay) Open() error {
	// Open a websocket connection to Discord and begin listening.
	if err := r.discordBot.Open(); err != nil {
		return errors.Wrap(err, "can't open discord")
	}

	if err := r.ircListener.Connect(r.Config.IRCServer); err != nil {
		return errors.Wrap(err, "can't open irc connection")
	}

	// run listener loop
	go r.ircListener.Loop()

	return nil
}

// Close the Relay
func (r *Relay) Close() {
	r.ircListener.Quit()
	r.discordBot.Close()
}
