// Package featureflags evaluates simple rollout flags configured as a
// comma separated spec, e.g. "stories=on,reshares=25%,legacy_profiles=off".
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Manager holds parsed flag rules. A nil Manager evaluates every flag
// as disabled.
type Manager struct {
	rules map[string]int
}

// NewManager parses a flag spec. Supported values per flag:
// on/true/1, off/false/0, or N% for a deterministic per-user rollout.
// Malformed pairs are skipped.
func NewManager(raw string) *Manager {
	rules := make(map[string]int)

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := normalize(parts[0])
		value := normalize(parts[1])
		if name == "" || value == "" {
			continue
		}

		switch value {
		case "on", "true", "1":
			rules[name] = 100
		case "off", "false", "0":
			rules[name] = 0
		default:
			if !strings.HasSuffix(value, "%") {
				continue
			}
			pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
			if err != nil {
				continue
			}
			if pct < 0 {
				pct = 0
			}
			if pct > 100 {
				pct = 100
			}
			rules[name] = pct
		}
	}

	return &Manager{rules: rules}
}

// Enabled reports whether a flag is on for the given user. Unknown
// flags are off. Percentage rollouts require a non-zero userID and are
// stable per (flag, user) pair.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	pct, ok := m.rules[normalize(name)]
	if !ok {
		return false
	}
	switch {
	case pct >= 100:
		return true
	case pct <= 0:
		return false
	case userID == 0:
		return false
	default:
		return rolloutBucket(name, userID) < pct
	}
}

// Snapshot returns the evaluated state of every configured flag for one
// user. Safe on a nil Manager.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	if m == nil {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(m.rules))
	for name := range m.rules {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
