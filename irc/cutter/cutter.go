// Package cutter slices arbitrary-length text into IRC-safe message
// chunks. IRC lines are capped at 512 bytes including the envelope the
// server prepends, so the usable payload depends on our own hostmask,
// the target name and the command word.
package cutter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// maxLineLen is the hard IRC line limit, trailing CRLF included.
	maxLineLen = 512

	// frameOverhead counts the fixed envelope characters:
	// :nick!user@host PRIVMSG target :message\r\n
	// two colons, three spaces, CR and LF.
	frameOverhead = 7

	// DefaultMaskLength is the conservative estimate used for our own
	// nick!user@host before the server has told us what it is.
	DefaultMaskLength = 100
)

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// Budget returns the number of message bytes that fit on one line once
// the envelope, our mask, the target and the command word are spoken
// for. A maskLen of zero or less means the mask is not yet known and
// DefaultMaskLength is assumed.
func Budget(maskLen, targetLen, typeLen int) int {
	if maskLen <= 0 {
		maskLen = DefaultMaskLength
	}

	n := maxLineLen - frameOverhead - maskLen - targetLen - typeLen
	if n < 1 {
		// A pathological envelope still has to make progress.
		n = 1
	}
	return n
}

// Split cuts text into chunks of at most size bytes. Runs of CR/LF
// always force a chunk boundary. Within a line, cuts prefer the last
// whitespace that fits; a single word longer than size is cut at the
// byte limit, backed off to a rune boundary. No chunk is ever empty.
func Split(text string, size int) []string {
	if size < 1 {
		size = 1
	}

	var chunks []string
	for _, line := range lineBreaks.Split(text, -1) {
		for len(line) > size {
			cut := strings.LastIndexAny(line[:size+1], " \t")
			if cut < 1 {
				cut = hardCut(line, size)
				chunks = append(chunks, line[:cut])
				line = line[cut:]
				continue
			}

			chunks = append(chunks, line[:cut])
			line = line[cut+1:]
		}

		if line != "" {
			chunks = append(chunks, line)
		}
	}

	return chunks
}

// hardCut finds the largest cut point not exceeding size that does not
// land in the middle of a rune.
func hardCut(line string, size int) int {
	cut := size
	for cut > 1 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return cut
}
