package relay

// A Message is one inbound chat event passing through the relay. It is
// built when the event arrives, consumed synchronously, and discarded
// once the outbound sends have been issued.
type Message struct {
	Author      string   // display name as it should be presented
	AuthorID    string   // stable account id; empty for IRC actors
	Body        string   // display text, split and relayed
	Raw         string   // original markup, published in pastes
	Attachments []string // attachment URLs, in order
	Webhook     bool     // the message was itself an impersonated send
}
