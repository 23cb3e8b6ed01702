package relay

import (
	"strings"

	ircf "github.com/meowkat/go-discord-relay/irc/format"
)

// palette is the set of IRC colours cycled through per author:
// blue, brown, cyan, dark green, green, magenta, olive, purple, red,
// teal, yellow.
var palette = [...]int{12, 5, 11, 3, 9, 13, 7, 6, 4, 10, 8}

// impersonationSuffix is appended to every name the relay impersonates
// on Discord, so its own sends can be recognised when they echo back.
const impersonationSuffix = " (on IRC)"

// loopbackSuffix is what the loopback check actually looks for. The
// space is deliberately not part of it.
const loopbackSuffix = "(on IRC)"

// ColorFor deterministically picks a colour for an author. Dividing by
// 100 first stops consecutively-issued account ids from walking the
// whole palette.
func ColorFor(id uint64) string {
	return ircf.Color(palette[(id/100)%uint64(len(palette))])
}

// Mangle inserts a zero-width space after the first character of a
// name. The result renders identically but no longer matches a
// same-named IRC user, so nobody gets pinged by their own relayed echo.
func Mangle(name string) string {
	runes := []rune(name)
	if len(runes) < 2 {
		return name
	}
	return string(runes[0]) + "\u200b" + string(runes[1:])
}

// IsImpersonatedLoopback reports whether a Discord author name belongs
// to one of the relay's own impersonated sends.
func IsImpersonatedLoopback(name string) bool {
	return strings.HasSuffix(name, loopbackSuffix)
}
