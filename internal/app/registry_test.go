package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

func TestRegistry_UserLifecycle(t *testing.T) {
	r := NewRegistry()

	u := r.GetOrCreateUser("s1", "alice")
	assert.Equal(t, guestName, u.Username)
	assert.Same(t, u, r.GetOrCreateUser("s1", "other"))

	require.NoError(t, r.UpdateUsername("s1", "Alice"))
	assert.ErrorIs(t, r.UpdateUsername("s1", ""), domain.ErrUsernameEmpty)

	got, ok := r.User("s1")
	require.True(t, ok)
	assert.Equal(t, "Alice", got.Username)
	assert.Equal(t, domain.UserID("alice"), got.ID)
}

func TestRegistry_HubMembership(t *testing.T) {
	r := NewRegistry()
	cancelled := false
	for _, sid := range []core.SessionID{"s1", "s2", "s3"} {
		r.BindSignal(sid, nil, func() { cancelled = true })
	}

	assert.True(t, r.UpdateHub("s1", "h1"))
	assert.True(t, r.UpdateHub("s2", "h1"))
	assert.True(t, r.UpdateHub("s3", "h2"))
	assert.False(t, r.UpdateHub("missing", "h1"))

	hub, _, ok := r.HubOf("s1")
	require.True(t, ok)
	assert.Equal(t, domain.RoomID("h1"), hub)
	assert.Len(t, r.MembersOfHub("h1"), 2)

	mates := r.HubMates("s1")
	require.Len(t, mates, 1)
	assert.Equal(t, core.SessionID("s2"), mates[0].SID)

	r.RemoveHub("s1")
	_, _, ok = r.HubOf("s1")
	assert.False(t, ok)

	assert.True(t, r.Cancel("s3"))
	assert.True(t, cancelled)
	assert.False(t, r.Cancel("missing"))

	r.Unbind("s3")
	_, ok = r.GetSession("s3")
	assert.False(t, ok)
}

