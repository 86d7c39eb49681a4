package database

import (
	"testing"

	modelspkg "ripple/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesFriendEdge(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.FriendEdge); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include FriendEdge")
}
