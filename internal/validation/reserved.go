package validation

import (
	"fmt"
	"strings"
)

// Usernames that collide with route segments or operational endpoints.
// Profiles are addressed as /api/profiles/:username, so a user named
// "metrics" or "me" would shadow real paths.
var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"api":           {},
	"auth":          {},
	"me":            {},
	"users":         {},
	"posts":         {},
	"comments":      {},
	"profiles":      {},
	"friends":       {},
	"messages":      {},
	"conversations": {},
	"stories":       {},
	"requests":      {},
	"status":        {},
	"history":       {},
	"login":         {},
	"signup":        {},
	"logout":        {},
	"health":        {},
	"metrics":       {},
	"ripple":        {},
	"support":       {},
	"system":        {},
}

// ValidateUsernameAvailable rejects usernames reserved by the platform.
// Matching is case-insensitive since lookups are.
func ValidateUsernameAvailable(username string) error {
	if _, exists := reservedUsernames[strings.ToLower(username)]; exists {
		return fmt.Errorf("username is reserved")
	}
	return nil
}
