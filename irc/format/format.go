// Package ircf holds the IRC formatting control characters and the
// colour helpers used when prefixing relayed messages.
package ircf

import "fmt"

// Chars includes all the codes defined in https://modern.ircdocs.horse/formatting.html
const (
	CharBold          rune = '\x02'
	CharItalics            = '\x1D'
	CharUnderline          = '\x1F'
	CharStrikethrough      = '\x1E'
	CharMonospace          = '\x11'
	CharColor              = '\x03'
	CharHex                = '\x04'
	CharReverseColor       = '\x16'
	CharReset              = '\x0F'
)

// Reset returns the renderer to unstyled text.
var Reset = string(CharReset)

// Color produces the colour introducer for the given code.
// Always two digits, so a digit following it in the text cannot extend the code.
func Color(code int) string {
	return fmt.Sprintf("%c%02d", CharColor, code)
}
