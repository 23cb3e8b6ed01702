package relay

import (
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/matterbridge/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/meowkat/go-discord-relay/irc/cutter"
	ircf "github.com/meowkat/go-discord-relay/irc/format"
)

// HandleDiscordMessage relays one inbound Discord event to IRC. It is
// called on the Discord session's handler goroutine and runs to
// completion before returning; there is no queueing and no retry.
func (r *Relay) HandleDiscordMessage(channelID string, msg Message) {
	if IsImpersonatedLoopback(msg.Author) {
		return // our own impersonated send echoing back
	}
	if msg.AuthorID == r.discord.SelfID() {
		return // it's just me
	}

	target, ok := r.links.IRCChannel(channelID)
	if !ok {
		return // not a channel we relay
	}

	if !r.irc.InChannel(target) {
		// TODO: surface these drops somewhere visible
		log.WithField("channel", target).Debugln("Dropping message for an IRC channel we are not in.")
		return
	}

	if matchesAny(r.Config.DiscordFilteredMessages, msg.Body) {
		return
	}

	id, err := strconv.ParseUint(msg.AuthorID, 10, 64)
	if err != nil {
		log.WithField("author", msg.AuthorID).Debugln("Author id is not numeric, colouring as zero.")
	}

	name := ColorFor(id) + Mangle(msg.Author) + ircf.Reset
	prefix := "<" + name + "> "
	title := msg.Author
	if msg.Webhook {
		prefix = "<WEB " + name + "> "
		title = "WEB " + title
	}

	budget := cutter.Budget(r.irc.MaskLength(), len(target), len("PRIVMSG"+prefix))
	chunks := cutter.Split(msg.Body, budget)

	channelName, guildName := r.discord.ChannelTitle(channelID)
	title += " in #" + channelName + " on " + guildName

	r.publish(target, prefix, name, msg, chunks, title)
}

// HandleIRCMessage relays one inbound IRC channel message to Discord.
// Called on the IRC connection's event goroutine; same synchronous,
// no-retry contract as the Discord direction.
func (r *Relay) HandleIRCMessage(channel, nick, body string) {
	if strings.EqualFold(nick, r.irc.CurrentNick()) {
		return // it's just me
	}

	channelID, ok := r.links.DiscordChannel(channel)
	if !ok {
		return // not a channel we relay
	}

	if matchesAny(r.Config.IRCFilteredMessages, body) {
		return
	}

	if !r.discord.HasImpersonation(channelID) {
		if err := r.discord.SendMessage(channelID, "<"+nick+"> "+body); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"channel": channelID,
				"nick":    nick,
			}).Errorln("could not transmit message to discord")
		}
		return
	}

	err := r.discord.SendImpersonated(channelID, &discordgo.WebhookParams{
		Username:  nick + impersonationSuffix,
		Content:   body,
		AvatarURL: r.discord.AvatarURL(nick),
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"channel": channelID,
			"nick":    nick,
		}).Errorln("could not transmit impersonated message to discord")
	}
}

func (r *Relay) isIgnoredHostmask(mask string) bool {
	return matchesAny(r.Config.IRCIgnores, mask)
}

func matchesAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
