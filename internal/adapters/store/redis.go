package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

const (
	hubKeyPrefix    = "lobby:hub:"
	favoritesPrefix = "lobby:favorites:"
	publicHubsKey   = "lobby:hubs:public"
	memberCountsKey = "lobby:hubs:members"
)

// hubRecord is the stored form of a hub. Member counts live in their own hash
// so presence updates never rewrite the record.
type hubRecord struct {
	domain.Room
}

func (r hubRecord) MarshalBinary() ([]byte, error) {
	r.MemberCount = 0
	return json.Marshal(r.Room)
}

func (r *hubRecord) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, &r.Room)
}

// Redis is a hub directory backed by a Redis server.
type Redis struct {
	rdb *redis.Client
}

var _ core.HubDirectory = (*Redis)(nil)

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func hubKey(id domain.RoomID) string         { return hubKeyPrefix + string(id) }
func favoritesKey(uid domain.UserID) string { return favoritesPrefix + string(uid) }

func (s *Redis) CreateHub(ctx context.Context, room domain.Room) error {
	ok, err := s.rdb.SetNX(ctx, hubKey(room.ID), hubRecord{room}, 0).Result()
	if err != nil {
		return fmt.Errorf("redis create hub: %w", err)
	}
	if !ok {
		return domain.ErrHubExists
	}
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, memberCountsKey, string(room.ID), max(room.MemberCount, 0))
	if room.Public {
		pipe.SAdd(ctx, publicHubsKey, string(room.ID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis index hub: %w", err)
	}
	return nil
}

func (s *Redis) GetHub(ctx context.Context, id domain.RoomID) (domain.Room, error) {
	rooms, err := s.load(ctx, []string{string(id)})
	if err != nil {
		return domain.Room{}, err
	}
	if len(rooms) == 0 {
		return domain.Room{}, domain.ErrHubNotFound
	}
	return rooms[0], nil
}

func (s *Redis) PublicRooms(ctx context.Context) ([]domain.Room, error) {
	ids, err := s.rdb.SMembers(ctx, publicHubsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis public hubs: %w", err)
	}
	return s.load(ctx, ids)
}

func (s *Redis) FavoriteRooms(ctx context.Context, uid domain.UserID) ([]domain.Room, error) {
	ids, err := s.rdb.SMembers(ctx, favoritesKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis favorites: %w", err)
	}
	return s.load(ctx, ids)
}

func (s *Redis) AddFavorite(ctx context.Context, uid domain.UserID, id domain.RoomID) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	if err := s.rdb.SAdd(ctx, favoritesKey(uid), string(id)).Err(); err != nil {
		return fmt.Errorf("redis add favorite: %w", err)
	}
	return nil
}

func (s *Redis) RemoveFavorite(ctx context.Context, uid domain.UserID, id domain.RoomID) error {
	if err := s.rdb.SRem(ctx, favoritesKey(uid), string(id)).Err(); err != nil {
		return fmt.Errorf("redis remove favorite: %w", err)
	}
	return nil
}

func (s *Redis) SetMemberCount(ctx context.Context, id domain.RoomID, n int) error {
	if err := s.mustExist(ctx, id); err != nil {
		return err
	}
	if err := s.rdb.HSet(ctx, memberCountsKey, string(id), max(n, 0)).Err(); err != nil {
		return fmt.Errorf("redis member count: %w", err)
	}
	return nil
}

func (s *Redis) mustExist(ctx context.Context, id domain.RoomID) error {
	n, err := s.rdb.Exists(ctx, hubKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis hub exists: %w", err)
	}
	if n == 0 {
		return domain.ErrHubNotFound
	}
	return nil
}

// load fetches hub records and their member counts. Ids without a record are
// skipped.
func (s *Redis) load(ctx context.Context, ids []string) ([]domain.Room, error) {
	if len(ids) == 0 {
		return []domain.Room{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = hubKey(domain.RoomID(id))
	}
	raw, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load hubs: %w", err)
	}
	counts, err := s.rdb.HMGet(ctx, memberCountsKey, ids...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis load member counts: %w", err)
	}

	out := make([]domain.Room, 0, len(ids))
	for i, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var rec hubRecord
		if err := rec.UnmarshalBinary([]byte(str)); err != nil {
			return nil, fmt.Errorf("redis decode hub %s: %w", ids[i], err)
		}
		if i < len(counts) {
			if c, ok := counts[i].(string); ok {
				n, err := strconv.Atoi(c)
				if err != nil {
					log.Warn().Err(err).Str("module", "store.redis").Str("hub", ids[i]).Str("count", c).Msg("corrupt member count, using 0")
				}
				rec.MemberCount = n
			}
		}
		out = append(out, rec.Room)
	}
	sortByCreated(out)
	return out, nil
}
