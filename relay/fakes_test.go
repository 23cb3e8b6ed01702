package relay

import (
	"strings"

	"github.com/matterbridge/discordgo"

	"github.com/meowkat/go-discord-relay/pastegg"
)

type privmsg struct {
	target string
	text   string
}

type fakeIRC struct {
	nick     string
	mask     int
	channels map[string]bool
	sent     []privmsg
}

func (f *fakeIRC) Privmsg(target, message string) {
	f.sent = append(f.sent, privmsg{target, message})
}

func (f *fakeIRC) CurrentNick() string { return f.nick }
func (f *fakeIRC) MaskLength() int     { return f.mask }

func (f *fakeIRC) InChannel(channel string) bool {
	return f.channels[strings.ToLower(channel)]
}

type impersonatedSend struct {
	channelID string
	params    *discordgo.WebhookParams
}

type fakeDiscord struct {
	selfID       string
	hooks        map[string]bool
	avatars      map[string]string // nick to avatar URL
	sent         []privmsg         // channel id and content
	impersonated []impersonatedSend
	sendErr      error
}

func (f *fakeDiscord) SelfID() string { return f.selfID }

func (f *fakeDiscord) SendMessage(channelID, content string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, privmsg{channelID, content})
	return nil
}

func (f *fakeDiscord) SendImpersonated(channelID string, params *discordgo.WebhookParams) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.impersonated = append(f.impersonated, impersonatedSend{channelID, params})
	return nil
}

func (f *fakeDiscord) HasImpersonation(channelID string) bool { return f.hooks[channelID] }
func (f *fakeDiscord) AvatarURL(nick string) string           { return f.avatars[nick] }

func (f *fakeDiscord) ChannelTitle(channelID string) (string, string) {
	return "general", "Kittens"
}

type fakePaster struct {
	url    string
	err    error
	titles []string
	files  [][]pastegg.File
}

func (f *fakePaster) Submit(title string, files []pastegg.File) (string, error) {
	f.titles = append(f.titles, title)
	f.files = append(f.files, files)
	return f.url, f.err
}

func newTestRelay(irc *fakeIRC, discord *fakeDiscord, pastes *fakePaster, links Links) *Relay {
	return &Relay{
		Config:  &Config{},
		links:   links,
		irc:     irc,
		discord: discord,
		pastes:  pastes,
	}
}
