package signal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Lobby/internal/adapters/store"
	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/app/orch"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []map[string]any
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var m map[string]any
	if err := json.Unmarshal(f, &m); err != nil {
		return errors.New("not json")
	}
	c.frames = append(c.frames, m)
	return nil
}

func (c *fakeConn) Close() {}

func (c *fakeConn) last() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func (c *fakeConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		out = append(out, f["type"].(string))
	}
	return out
}

func newController(t *testing.T) (*SignalWSController, *store.Memory) {
	t.Helper()
	dir := store.NewMemory()
	require.NoError(t, dir.CreateHub(context.Background(), domain.Room{ID: "hub0001", Name: "Main Lobby", Public: true}))
	o := &orch.Orchestrator{
		Registry:  app.NewRegistry(),
		Rooms:     app.NewRoomManager(),
		Policy:    app.SimplePolicy{},
		Directory: dir,
	}
	return NewSignalWSController(o), dir
}

func bind(ctl *SignalWSController, sid, uid string) *fakeConn {
	conn := &fakeConn{}
	user := ctl.Orch.Registry.GetOrCreateUser(core.SessionID(sid), domain.UserID(uid))
	ctl.Orch.Registry.BindSignal(core.SessionID(sid), core.NewMemberSession(domain.NewMember(user), conn), nil)
	return conn
}

func TestSignal_JoinSendsStateAndNotifiesMates(t *testing.T) {
	ctl, dir := newController(t)
	ctx := context.Background()
	alice := bind(ctl, "s1", "alice")
	bob := bind(ctl, "s2", "bob")

	ctl.handleSignal(ctx, "s1", alice, []byte(`{"type":"join","hub":"hub0001","name":"Alice"}`))
	state := alice.last()
	assert.Equal(t, "room_state", state["type"])
	assert.Equal(t, "Main Lobby", state["hub_name"])
	assert.EqualValues(t, 1, state["count"])

	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"join","hub":"hub0001"}`))
	assert.Equal(t, []string{"room_state", "member_joined"}, alice.types())

	hub, err := dir.GetHub(ctx, "hub0001")
	require.NoError(t, err)
	assert.Equal(t, 2, hub.MemberCount)

	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"leave"}`))
	assert.Equal(t, "left", bob.last()["type"])
	assert.Equal(t, "member_left", alice.last()["type"])

	hub, err = dir.GetHub(ctx, "hub0001")
	require.NoError(t, err)
	assert.Equal(t, 1, hub.MemberCount)
}

func TestSignal_JoinErrors(t *testing.T) {
	ctl, _ := newController(t)
	ctx := context.Background()
	conn := bind(ctl, "s1", "alice")

	ctl.handleSignal(ctx, "s1", conn, []byte(`{"type":"join","hub":"nope"}`))
	assert.Equal(t, "hub_not_found", conn.last()["error"])

	ctl.handleSignal(ctx, "s1", conn, []byte(`{"type":"join"}`))
	assert.Equal(t, "bad_payload", conn.last()["error"])

	ctl.handleSignal(ctx, "s1", conn, []byte(`not json`))
	assert.Equal(t, "bad_json", conn.last()["error"])

	ctl.handleSignal(ctx, "s1", conn, []byte(`{"type":"dance"}`))
	assert.Equal(t, "unknown_type", conn.last()["error"])
}

func TestSignal_JoinRateLimited(t *testing.T) {
	ctl, _ := newController(t)
	ctl.Limiter = NewRoomRateLimiter(1, time.Minute)
	ctx := context.Background()
	conn := bind(ctl, "s1", "alice")

	ctl.handleSignal(ctx, "s1", conn, []byte(`{"type":"join","hub":"hub0001"}`))
	assert.Equal(t, "room_state", conn.last()["type"])

	ctl.handleSignal(ctx, "s1", conn, []byte(`{"type":"join","hub":"hub0001"}`))
	assert.Equal(t, "rate_limited", conn.last()["error"])
}

func TestSignal_RenameAndWhoAmI(t *testing.T) {
	ctl, _ := newController(t)
	ctx := context.Background()
	alice := bind(ctl, "s1", "alice")
	bob := bind(ctl, "s2", "bob")
	ctl.handleSignal(ctx, "s1", alice, []byte(`{"type":"join","hub":"hub0001"}`))
	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"join","hub":"hub0001"}`))

	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"rename","name":"Bobby"}`))
	who := bob.last()
	assert.Equal(t, "whoami", who["type"])
	assert.Equal(t, "Bobby", who["username"])
	assert.Equal(t, "hub0001", who["hub"])
	assert.Equal(t, "member_updated", alice.last()["type"])

	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"rename","name":""}`))
	assert.Equal(t, "empty name", bob.last()["error"])

	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"ping"}`))
	assert.Equal(t, "pong", bob.last()["type"])
}

func TestSignal_DisconnectNotifiesHub(t *testing.T) {
	ctl, dir := newController(t)
	ctx := context.Background()
	alice := bind(ctl, "s1", "alice")
	bob := bind(ctl, "s2", "bob")
	ctl.handleSignal(ctx, "s1", alice, []byte(`{"type":"join","hub":"hub0001"}`))
	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"join","hub":"hub0001"}`))

	ctl.disconnect(ctx, "s2")

	assert.Equal(t, "member_left", alice.last()["type"])
	hub, err := dir.GetHub(ctx, "hub0001")
	require.NoError(t, err)
	assert.Equal(t, 1, hub.MemberCount)
}

func TestRoomRateLimiter_SlidingWindow(t *testing.T) {
	rl := NewRoomRateLimiter(2, time.Minute)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("alice"))
	assert.True(t, rl.Allow("alice"))
	assert.False(t, rl.Allow("alice"))
	assert.True(t, rl.Allow("bob"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("alice"))
}

func TestSignal_EvictHubNotifiesAndEmpties(t *testing.T) {
	ctl, dir := newController(t)
	ctx := context.Background()
	alice := bind(ctl, "s1", "alice")
	bob := bind(ctl, "s2", "bob")
	ctl.handleSignal(ctx, "s1", alice, []byte(`{"type":"join","hub":"hub0001"}`))
	ctl.handleSignal(ctx, "s2", bob, []byte(`{"type":"join","hub":"hub0001"}`))

	assert.Equal(t, 2, ctl.EvictHub(ctx, "hub0001"))

	assert.Equal(t, "evicted", alice.last()["type"])
	assert.Equal(t, "evicted", bob.last()["type"])
	assert.Empty(t, ctl.Orch.Presence())
	hub, err := dir.GetHub(ctx, "hub0001")
	require.NoError(t, err)
	assert.Equal(t, 0, hub.MemberCount)
}
