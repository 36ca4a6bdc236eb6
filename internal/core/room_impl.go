package core

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory presence room.
// It never closes adapter-owned resources.
type roomImpl struct {
	id     domain.RoomID
	mu     sync.RWMutex
	bySID  map[SessionID]MemberSession
	byUser map[domain.UserID]SessionID
}

func NewPresenceRoom(id domain.RoomID) PresenceRoom {
	return &roomImpl{
		id:     id,
		bySID:  make(map[SessionID]MemberSession),
		byUser: make(map[domain.UserID]SessionID),
	}
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

// MemberCount counts distinct users, so a user with two tabs open counts once.
func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}

func (r *roomImpl) AddMember(sid SessionID, ms MemberSession) {
	u := ms.Meta().User.ID
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySID[sid] = ms
	r.byUser[u] = sid
	log.Info().Str("module", "core.room").Str("hub", string(r.id)).Str("sid", string(sid)).Str("user", string(u)).Msg("member added")
}

func (r *roomImpl) RemoveMember(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ms, ok := r.bySID[sid]
	if !ok {
		return
	}
	u := ms.Meta().User.ID
	delete(r.bySID, sid)
	if r.byUser[u] == sid {
		delete(r.byUser, u)
		// another tab of the same user keeps the user present
		for other, m := range r.bySID {
			if m.Meta().User.ID == u {
				r.byUser[u] = other
				break
			}
		}
	}
	log.Info().Str("module", "core.room").Str("hub", string(r.id)).Str("sid", string(sid)).Msg("member removed")
}

func (r *roomImpl) Broadcast(from SessionID, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for sid, m := range r.bySID {
		if sid == from {
			continue
		}
		if err := m.Signal().TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, m)
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *roomImpl) MembersSnapshot() []MemberDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberDTO, 0, len(r.byUser))
	for _, sid := range r.byUser {
		u := r.bySID[sid].Meta().User
		out = append(out, MemberDTO{ID: u.ID, Username: u.Username})
	}
	slices.SortFunc(out, func(a, b MemberDTO) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
