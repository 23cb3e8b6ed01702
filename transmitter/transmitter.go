// Package transmitter sends impersonated (webhook) messages to
// Discord. Each channel that should display IRC speakers under their
// own name gets a webhook endpoint in the configuration; channels
// without one fall back to plain bot messages.
package transmitter

import (
	"regexp"

	"github.com/matterbridge/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// A Transmitter holds the webhook credentials for a single guild,
// keyed by channel ID. The pool is built once before the sessions
// open and is read-only afterwards.
type Transmitter struct {
	session *discordgo.Session

	// webhooks maps from a channel ID to parsed webhook credentials
	webhooks map[string]webhook
}

type webhook struct {
	id    string
	token string
}

// ErrWebhookNotFound is returned when a channel has no webhook configured.
var ErrWebhookNotFound = errors.New("webhook for this channel does not exist")

var endpointRegex = regexp.MustCompile(`/webhooks/(\d+)/([^/?#\s]+)`)

// New returns a Transmitter for the given session and channel-to-endpoint
// mapping. Endpoints are full webhook URLs as copied from Discord.
func New(session *discordgo.Session, endpoints map[string]string) (*Transmitter, error) {
	webhooks := make(map[string]webhook, len(endpoints))

	for channel, endpoint := range endpoints {
		match := endpointRegex.FindStringSubmatch(endpoint)
		if match == nil {
			return nil, errors.Errorf("webhook endpoint for channel %s is not a webhook URL", channel)
		}

		webhooks[channel] = webhook{id: match[1], token: match[2]}
		log.WithFields(log.Fields{
			"id":      match[1],
			"channel": channel,
		}).Println("Picking up webhook")
	}

	return &Transmitter{
		session:  session,
		webhooks: webhooks,
	}, nil
}

// Has reports whether a webhook is configured for the given channel.
func (t *Transmitter) Has(channelID string) bool {
	_, ok := t.webhooks[channelID]
	return ok
}

// Send executes the channel's webhook with the provided params.
//
// Note that this function will wait until Discord responds with an answer.
func (t *Transmitter) Send(channelID string, params *discordgo.WebhookParams) error {
	wh, ok := t.webhooks[channelID]
	if !ok {
		return ErrWebhookNotFound
	}

	_, err := t.session.WebhookExecute(wh.id, wh.token, true, params)
	if err != nil {
		return errors.Wrap(err, "could not execute webhook")
	}

	return nil
}
