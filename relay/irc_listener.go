package relay

import (
	"crypto/tls"
	"strings"
	"sync"

	irc "github.com/qaisjp/go-ircevent"
	log "github.com/sirupsen/logrus"
)

// ircListener is the IRC-side collaborator: a single connection that
// listens in every linked channel and speaks for the relay.
type ircListener struct {
	*irc.Connection

	relay *Relay

	mu       sync.RWMutex
	channels map[string]struct{} // channels we are currently in
	maskLen  int                 // learned length of our own nick!user@host
}

func newIRCListener(r *Relay) *ircListener {
	irccon := irc.IRC(r.Config.IRCNick, r.Config.IRCUser)
	i := &ircListener{
		Connection: irccon,
		relay:      r,
		channels:   make(map[string]struct{}),
	}

	irccon.Password = r.Config.IRCServerPass
	if !r.Config.NoTLS {
		irccon.UseTLS = true
		irccon.TLSConfig = &tls.Config{
			InsecureSkipVerify: r.Config.InsecureSkipVerify,
		}
	}

	if r.Config.Debug {
		irccon.VerboseCallbackHandler = true
		irccon.Debug = true
	}

	// Welcome event
	irccon.AddCallback("001", i.OnWelcome)

	// Called when received channel names... essentially OnJoinChannel
	irccon.AddCallback("366", i.OnJoinChannel)

	irccon.AddCallback("JOIN", i.OnJoin)
	irccon.AddCallback("PART", i.OnPart)
	irccon.AddCallback("KICK", i.OnKick)

	irccon.AddCallback("PRIVMSG", i.OnPrivateMessage)
	irccon.AddCallback("CTCP_ACTION", i.OnPrivateMessage)

	return i
}

func (i *ircListener) OnWelcome(e *irc.Event) {
	// Join all linked channels
	i.SendRaw("JOIN " + strings.Join(i.relay.links.IRCChannels(), ","))
}

// OnJoin learns our own hostmask from the server's echo of our JOIN.
// Before that echo arrives the splitter works off a conservative
// estimate.
func (i *ircListener) OnJoin(e *irc.Event) {
	if !strings.EqualFold(e.Nick, i.GetNick()) {
		return
	}

	i.mu.Lock()
	i.maskLen = len(e.Source)
	i.mu.Unlock()
}

func (i *ircListener) OnJoinChannel(e *irc.Event) {
	i.mu.Lock()
	i.channels[strings.ToLower(e.Arguments[1])] = struct{}{}
	i.mu.Unlock()

	log.Infof("Listener has joined IRC channel %s.", e.Arguments[1])
}

func (i *ircListener) OnPart(e *irc.Event) {
	if !strings.EqualFold(e.Nick, i.GetNick()) || len(e.Arguments) == 0 {
		return
	}

	i.mu.Lock()
	delete(i.channels, strings.ToLower(e.Arguments[0]))
	i.mu.Unlock()
}

// OnKick rejoins the channel; presence drops until the rejoin lands.
func (i *ircListener) OnKick(e *irc.Event) {
	if len(e.Arguments) < 2 || e.Arguments[1] != i.GetNick() {
		return
	}

	i.mu.Lock()
	delete(i.channels, strings.ToLower(e.Arguments[0]))
	i.mu.Unlock()

	i.Join(e.Arguments[0])
}

func (i *ircListener) OnPrivateMessage(e *irc.Event) {
	// Ignore private messages
	if len(e.Arguments) == 0 || !strings.HasPrefix(e.Arguments[0], "#") {
		return
	}

	if i.relay.isIgnoredHostmask(e.Source) {
		return
	}

	msg := e.Message()
	if e.Code == "CTCP_ACTION" {
		msg = "_" + msg + "_"
	}

	i.relay.HandleIRCMessage(e.Arguments[0], e.Nick, msg)
}

func (i *ircListener) CurrentNick() string {
	return i.GetNick()
}

func (i *ircListener) MaskLength() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.maskLen
}

func (i *ircListener) InChannel(channel string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.channels[strings.ToLower(channel)]
	return ok
}
