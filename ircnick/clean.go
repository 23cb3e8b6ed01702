// Package ircnick makes configured nicknames safe for IRC servers.
package ircnick

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Sanitize transliterates a nickname to ASCII and replaces characters
// a charybdis-style server would reject with underscores.
// https://github.com/lp0/charybdis/blob/9ced2a7932dddd069636fe6fe8e9faa6db904703/ircd/client.c#L854-L884
func Sanitize(nick string) string {
	nick = strings.TrimSpace(unidecode.Unidecode(nick))
	if nick == "" {
		return "_"
	}

	b := []byte(nick)
	for i, c := range b {
		if !isNickChar(c) {
			b[i] = '_'
		}
	}

	// Leading digits and dashes are valid mid-nick but not up front
	if isDigit(b[0]) || b[0] == '-' {
		return "_" + string(b)
	}

	return string(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNickChar(c byte) bool {
	if isLetter(c) || isDigit(c) || c == '-' {
		return true
	}

	// RFC 2812 "special" characters
	switch c {
	case '[', ']', '\\', '`', '_', '^', '{', '|', '}':
		return true
	}
	return false
}
