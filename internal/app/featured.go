package app

import (
	"cmp"
	"slices"

	"github.com/dkeye/Lobby/internal/domain"
)

// ComposeFeatured merges favorite and public rooms into the featured list:
// each distinct room record once, most populated first. Records are compared
// by value, so two snapshots of the same hub that differ in any field (a stale
// member count, say) are both kept.
func ComposeFeatured(favorites, public []domain.Room) []domain.Room {
	seen := make(map[domain.Room]struct{}, len(favorites)+len(public))
	featured := make([]domain.Room, 0, len(favorites)+len(public))
	for _, list := range [][]domain.Room{favorites, public} {
		for _, r := range list {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			featured = append(featured, r)
		}
	}
	slices.SortStableFunc(featured, func(a, b domain.Room) int {
		return cmp.Compare(b.MemberCount, a.MemberCount)
	})
	return featured
}

// ShowDescription reports whether the landing page shows the marketing
// description instead of the room grid.
func ShowDescription(featured []domain.Room) bool {
	return len(featured) == 0
}
