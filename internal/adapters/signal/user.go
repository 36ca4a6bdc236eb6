package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

func (ctl *SignalWSController) handleRename(
	ctx context.Context,
	sid core.SessionID,
	conn core.SignalConnection,
	data []byte,
) {
	type renamePayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	var p renamePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad rename payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if p.Name == "" {
		ctl.sendError(conn, "empty name")
		return
	}

	if err := ctl.Orch.Registry.UpdateUsername(sid, p.Name); err != nil {
		ctl.sendError(conn, "invalid_name")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("name", p.Name).Msg("rename")
	ctl.handleWhoAmI(ctx, sid, conn)

	hub, _, ok := ctl.Orch.Registry.HubOf(sid)
	if !ok {
		return
	}
	user, _ := ctl.Orch.Registry.User(sid)
	ctl.BroadcastFrom(ctx, sid, memberEvent{Type: "member_updated", Hub: string(hub), User: user})
}

func (ctl *SignalWSController) handleWhoAmI(
	ctx context.Context,
	sid core.SessionID,
	conn core.SignalConnection,
) {
	user, _ := ctl.Orch.Registry.User(sid)

	resp := struct {
		Type     string        `json:"type"`
		Username string        `json:"username"`
		Hub      domain.RoomID `json:"hub,omitempty"`
		HubName  string        `json:"hub_name,omitempty"`
	}{
		Type:     "whoami",
		Username: user.Username,
	}
	if hubID, _, ok := ctl.Orch.Registry.HubOf(sid); ok {
		if hub, err := ctl.Orch.Directory.GetHub(ctx, hubID); err == nil {
			resp.Hub = hubID
			resp.HubName = hub.Name
		}
	}
	ctl.sendJSON(conn, resp)
}
