package router

import "strings"

// Mode is the response style requested by the client.
type Mode string

const (
	ModeQuick    Mode = "quick"
	ModeDetailed Mode = "detailed"
)

// ParseMode maps the request field to a Mode. Anything other than "quick"
// falls back to detailed.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeQuick)) {
		return ModeQuick
	}
	return ModeDetailed
}
