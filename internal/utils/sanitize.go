package utils

import "html"

// EscapeHTML sanitizes a record field before it is interpolated into any
// markup we emit (Telegram HTML messages). Stored values are untrusted user
// input.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}
