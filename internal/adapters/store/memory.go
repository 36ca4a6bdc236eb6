// Package store holds the hub directory implementations.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

// Memory is a threadsafe in-memory hub directory.
type Memory struct {
	mu        sync.RWMutex
	hubs      map[domain.RoomID]domain.Room
	favorites map[domain.UserID]map[domain.RoomID]struct{}
}

var _ core.HubDirectory = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		hubs:      make(map[domain.RoomID]domain.Room),
		favorites: make(map[domain.UserID]map[domain.RoomID]struct{}),
	}
}

func (m *Memory) CreateHub(_ context.Context, room domain.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hubs[room.ID]; ok {
		return domain.ErrHubExists
	}
	m.hubs[room.ID] = room
	return nil
}

func (m *Memory) GetHub(_ context.Context, id domain.RoomID) (domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.hubs[id]
	if !ok {
		return domain.Room{}, domain.ErrHubNotFound
	}
	return r, nil
}

func (m *Memory) PublicRooms(_ context.Context) ([]domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Room, 0, len(m.hubs))
	for _, r := range m.hubs {
		if r.Public {
			out = append(out, r)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (m *Memory) FavoriteRooms(_ context.Context, uid domain.UserID) ([]domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	favs := m.favorites[uid]
	out := make([]domain.Room, 0, len(favs))
	for id := range favs {
		if r, ok := m.hubs[id]; ok {
			out = append(out, r)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (m *Memory) AddFavorite(_ context.Context, uid domain.UserID, id domain.RoomID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hubs[id]; !ok {
		return domain.ErrHubNotFound
	}
	favs, ok := m.favorites[uid]
	if !ok {
		favs = make(map[domain.RoomID]struct{})
		m.favorites[uid] = favs
	}
	favs[id] = struct{}{}
	return nil
}

func (m *Memory) RemoveFavorite(_ context.Context, uid domain.UserID, id domain.RoomID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.favorites[uid], id)
	return nil
}

func (m *Memory) SetMemberCount(_ context.Context, id domain.RoomID, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.hubs[id]
	if !ok {
		return domain.ErrHubNotFound
	}
	r.MemberCount = max(n, 0)
	m.hubs[id] = r
	return nil
}

// sortByCreated gives listings a stable order: newest first, then by id.
func sortByCreated(rooms []domain.Room) {
	slices.SortFunc(rooms, func(a, b domain.Room) int {
		return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}
