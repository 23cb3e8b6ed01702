package relay

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/meowkat/go-discord-relay/pastegg"
)

// pasteThreshold is the batch size (chunks plus attachments) at which
// inline delivery gives way to a single paste link.
const pasteThreshold = 3

var pasteLineBreaks = regexp.MustCompile(`[\r\n]+`)

// publish delivers a batch of outbound chunks to an IRC channel.
// Small batches go inline, one PRIVMSG per chunk and per attachment
// URL. Anything bigger becomes a paste holding the full original
// content, delivered as a single link. When the paste service is down
// the channel gets a short notice instead; the content itself is not
// retried inline.
func (r *Relay) publish(target, prefix, name string, msg Message, chunks []string, title string) {
	if len(chunks)+len(msg.Attachments) < pasteThreshold {
		for _, chunk := range chunks {
			r.irc.Privmsg(target, prefix+chunk)
		}
		for _, attachment := range msg.Attachments {
			r.irc.Privmsg(target, prefix+attachment)
		}
		return
	}

	files := []pastegg.File{{
		Name: "message.md",
		// markdown hard breaks, so the paste renders line per line
		Content: pasteLineBreaks.ReplaceAllString(msg.Raw, "  \n"),
	}}
	for i, attachment := range msg.Attachments {
		files = append(files, pastegg.File{
			Name:    fmt.Sprintf("attachment%d.md", i),
			Content: "[" + attachment + "](" + attachment + ")",
		})
	}

	url, err := r.pastes.Submit(title, files)
	if err != nil || url == "" {
		log.WithError(err).WithField("title", title).Warnln("could not publish paste")
		r.irc.Privmsg(target, name+" sent too much, but the paste service is offline")
		return
	}

	r.irc.Privmsg(target, prefix+url)
}
