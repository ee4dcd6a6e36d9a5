package utils

import "strings"

// UsernameFromEmail derives the username deterministically from the email's
// local part.
func UsernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
