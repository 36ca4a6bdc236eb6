package signal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

type memberEvent struct {
	Type string      `json:"type"`
	Hub  string      `json:"hub"`
	User domain.User `json:"user"`
}

func (ctl *SignalWSController) handleJoin(
	ctx context.Context,
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	type joinPayload struct {
		Type string `json:"type"`
		Hub  string `json:"hub"`
		Name string `json:"name,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Hub == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, "bad_payload")
		return
	}

	user, _ := ctl.Orch.Registry.User(sid)
	if ctl.Limiter != nil && !ctl.Limiter.Allow(user.ID) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join rate limited")
		ctl.sendError(conn, "rate_limited")
		return
	}

	if p.Name != "" {
		if err := ctl.Orch.Registry.UpdateUsername(sid, p.Name); err != nil {
			ctl.sendError(conn, "invalid_name")
			return
		}
		log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", p.Name).Msg("rename on join")
	}

	hubID := domain.RoomID(p.Hub)
	previous, _, hadHub := ctl.Orch.Registry.HubOf(sid)
	if err := ctl.Orch.Join(ctx, sid, hubID); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("hub", p.Hub).Msg("join failed")
		if errors.Is(err, domain.ErrHubNotFound) {
			ctl.sendError(conn, "hub_not_found")
			return
		}
		ctl.sendError(conn, "join_failed")
		return
	}
	user, _ = ctl.Orch.Registry.User(sid)
	if hadHub && previous != hubID {
		ctl.BroadcastHub(ctx, previous, memberEvent{Type: "member_left", Hub: string(previous), User: user})
	}

	hub, err := ctl.Orch.Directory.GetHub(ctx, hubID)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("hub", p.Hub).Msg("hub vanished after join")
		ctl.sendError(conn, "join_failed")
		return
	}
	members := []core.MemberDTO{}
	count := 0
	if room, ok := ctl.Orch.Rooms.Get(hubID); ok {
		members = room.MembersSnapshot()
		count = room.MemberCount()
	}
	ctl.sendJSON(conn, struct {
		Type    string           `json:"type"`
		Hub     domain.RoomID    `json:"hub"`
		HubName string           `json:"hub_name"`
		Members []core.MemberDTO `json:"members"`
		Count   int              `json:"count"`
	}{
		Type:    "room_state",
		Hub:     hub.ID,
		HubName: hub.Name,
		Members: members,
		Count:   count,
	})

	ctl.BroadcastFrom(ctx, sid, memberEvent{Type: "member_joined", Hub: p.Hub, User: user})
}

// handleLeave: leave the current hub, the connection stays open.
func (ctl *SignalWSController) handleLeave(
	ctx context.Context,
	sid core.SessionID,
	conn core.SignalConnection,
) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	hub, _, ok := ctl.Orch.Registry.HubOf(sid)

	ctl.Orch.KickBySID(ctx, sid)
	ctl.sendJSON(conn, map[string]any{
		"type": "left",
	})

	if ok {
		user, _ := ctl.Orch.Registry.User(sid)
		ctl.BroadcastHub(ctx, hub, memberEvent{Type: "member_left", Hub: string(hub), User: user})
	}
}

func (ctl *SignalWSController) disconnect(ctx context.Context, sid core.SessionID) {
	hub, _, ok := ctl.Orch.Registry.HubOf(sid)
	user, _ := ctl.Orch.Registry.User(sid)
	ctl.Orch.OnDisconnect(ctx, sid)
	if ok {
		ctl.BroadcastHub(ctx, hub, memberEvent{Type: "member_left", Hub: string(hub), User: user})
	}
}

// EvictHub tells everyone in hub they were removed, then empties it. It
// returns how many sessions were kicked.
func (ctl *SignalWSController) EvictHub(ctx context.Context, hub domain.RoomID) int {
	ctl.BroadcastHub(ctx, hub, map[string]any{
		"type": "evicted",
		"hub":  hub,
	})
	return len(ctl.Orch.EvictHub(ctx, hub))
}
