package orch

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

var ErrNoSession = errors.New("no session")

const hubLockStripes = 64

// Orchestrator keeps presence rooms, the session registry and the directory's
// member counts in step. Membership changes of one hub, and the count write
// that follows them, run under that hub's lock.
type Orchestrator struct {
	Registry  *app.Registry
	Rooms     core.RoomManager
	Policy    app.Policy
	Directory core.HubDirectory

	hubLocks [hubLockStripes]sync.Mutex
}

func (o *Orchestrator) lockHub(hub domain.RoomID) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(hub))
	mu := &o.hubLocks[h.Sum32()%hubLockStripes]
	mu.Lock()
	return mu.Unlock
}

// Broadcast fans data out to the hub mates of sid and applies the
// backpressure policy to anyone who could not take it.
func (o *Orchestrator) Broadcast(ctx context.Context, sid core.SessionID, data core.Frame) {
	hub, _, ok := o.Registry.HubOf(sid)
	if !ok {
		return
	}
	o.BroadcastHub(ctx, hub, sid, data)
}

// BroadcastHub fans data out to every session in hub except from.
func (o *Orchestrator) BroadcastHub(ctx context.Context, hub domain.RoomID, from core.SessionID, data core.Frame) {
	room, ok := o.Rooms.Get(hub)
	if !ok {
		return
	}
	res := room.Broadcast(from, data)
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			for _, snap := range o.Registry.MembersOfHub(hub) {
				if snap.Session == slow {
					log.Warn().Str("module", "orch").Str("sid", string(snap.SID)).Str("hub", string(hub)).Msg("kicking slow member")
					o.KickBySID(ctx, snap.SID)
				}
			}
		case app.MarkSlow, app.DropFrame, app.NoAction:
		}
	}
}

// Join moves sid into hub, leaving its current hub first.
func (o *Orchestrator) Join(ctx context.Context, sid core.SessionID, hub domain.RoomID) error {
	if _, err := o.Directory.GetHub(ctx, hub); err != nil {
		return fmt.Errorf("join %s: %w", hub, err)
	}
	if current, _, ok := o.Registry.HubOf(sid); ok {
		if current == hub {
			return nil
		}
		o.KickBySID(ctx, sid)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_hub", string(current)).Msg("left previous hub")
	}
	session, ok := o.Registry.GetSession(sid)
	if !ok {
		return ErrNoSession
	}

	unlock := o.lockHub(hub)
	defer unlock()
	room := o.Rooms.GetOrCreate(hub)
	room.AddMember(sid, session)
	o.Registry.UpdateHub(sid, hub)
	o.syncCount(ctx, hub, room)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("hub", string(hub)).Msg("added to hub")
	return nil
}

// KickBySID takes sid out of its hub. The presence room is dropped once its
// last member is gone.
func (o *Orchestrator) KickBySID(ctx context.Context, sid core.SessionID) {
	hub, _, ok := o.Registry.HubOf(sid)
	if !ok {
		return
	}
	unlock := o.lockHub(hub)
	defer unlock()
	if current, _, ok := o.Registry.HubOf(sid); !ok || current != hub {
		return
	}
	o.Registry.RemoveHub(sid)
	room, ok := o.Rooms.Get(hub)
	if !ok {
		return
	}
	room.RemoveMember(sid)
	o.syncCount(ctx, hub, room)
	if room.MemberCount() == 0 {
		o.Rooms.StopRoom(hub)
		log.Debug().Str("module", "orch").Str("hub", string(hub)).Msg("presence room stopped")
	}
}

// OnDisconnect drops every trace of sid.
func (o *Orchestrator) OnDisconnect(ctx context.Context, sid core.SessionID) {
	o.KickBySID(ctx, sid)
	o.Registry.Unbind(sid)
}

// EvictHub kicks every session out of hub and returns the kicked ids.
func (o *Orchestrator) EvictHub(ctx context.Context, hub domain.RoomID) []core.SessionID {
	var kicked []core.SessionID
	for _, snap := range o.Registry.MembersOfHub(hub) {
		o.KickBySID(ctx, snap.SID)
		kicked = append(kicked, snap.SID)
	}
	unlock := o.lockHub(hub)
	if room, ok := o.Rooms.Get(hub); ok && room.MemberCount() == 0 {
		o.Rooms.StopRoom(hub)
	}
	unlock()
	log.Info().Str("module", "orch").Str("hub", string(hub)).Int("kicked", len(kicked)).Msg("hub evicted")
	return kicked
}

// Presence lists the live presence rooms.
func (o *Orchestrator) Presence() []core.RoomInfo {
	return o.Rooms.List()
}

func (o *Orchestrator) syncCount(ctx context.Context, hub domain.RoomID, room core.PresenceRoom) {
	n := room.MemberCount()
	if err := o.Directory.SetMemberCount(ctx, hub, n); err != nil {
		log.Error().Err(err).Str("module", "orch").Str("hub", string(hub)).Int("count", n).Msg("member count not stored")
	}
}
