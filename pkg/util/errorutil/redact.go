package errorutil

import (
	"regexp"
	"unicode/utf8"
)

// MaxSafeMessageLen bounds messages that leave the service.
const MaxSafeMessageLen = 180

// RedactedCredential replaces the user:password segment of a connection string.
const RedactedCredential = "***:***@"

// The password runs to the last '@' of the authority, matching url.Parse.
var connStringCredential = regexp.MustCompile(`(?i)(postgres(?:ql)?://)[^\s:@/?#]+:[^\s/?#]*@`)

// RedactCredentials masks credentials embedded in postgres connection strings,
// keeping scheme and host visible.
func RedactCredentials(msg string) string {
	return connStringCredential.ReplaceAllString(msg, "${1}"+RedactedCredential)
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// SafeMessage stringifies err, redacts credentials and truncates the result.
func SafeMessage(err error) string {
	if err == nil {
		return ""
	}
	return Truncate(RedactCredentials(err.Error()), MaxSafeMessageLen)
}
