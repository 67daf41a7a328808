package mdedit

import "regexp"

// autolinkRE matches a web URL (with a scheme or a "www." prefix) or a
// mailto address, anchored at the start of the input.
var autolinkRE = regexp.MustCompile(`^(?:((?:(?:www\.)|(?:https?://))[\w-]+(?:\.[\w-]+)+(?:/[^)\s<]*)*)|((mailto: ?)([\w.+-]+@[\w-]+(?:\.[\w.-]+)+)))`)

// MatchesAutolink reports whether text starts with a URL or mailto address.
// Trailing text after the match is allowed; leading text is not.
func MatchesAutolink(text string) bool {
	return autolinkRE.MatchString(text)
}
