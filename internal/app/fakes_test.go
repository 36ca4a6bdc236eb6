package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) Navigate(target string) { n.targets = append(n.targets, target) }

type recordingHubCreator struct {
	calls []core.HubRequest
	err   error
}

func (c *recordingHubCreator) CreateAndRedirectToNewHub(_ context.Context, req core.HubRequest, nav core.Navigator) (domain.Room, error) {
	c.calls = append(c.calls, req)
	if c.err != nil {
		return domain.Room{}, c.err
	}
	if req.ForceRedirect {
		nav.Navigate("/new0001/new-hub")
	}
	return domain.Room{ID: "new0001"}, nil
}

type flags map[string]bool

func (f flags) Feature(name string) bool { return f[name] }

type images map[string]string

func (i images) Image(key string, background bool) string {
	u := i[key]
	if background && u != "" {
		return fmt.Sprintf("url(%q)", u)
	}
	return u
}

type scenes []domain.Scene

func (s scenes) Scene(id string) (domain.Scene, bool) {
	for _, sc := range s {
		if sc.ID == id {
			return sc, true
		}
	}
	return domain.Scene{}, false
}

var errUnavailable = errors.New("unavailable")

type staticRooms struct {
	favorites map[domain.UserID][]domain.Room
	public    []domain.Room
	favErr    error
	pubErr    error
}

func (s *staticRooms) FavoriteRooms(_ context.Context, uid domain.UserID) ([]domain.Room, error) {
	if s.favErr != nil {
		return nil, s.favErr
	}
	return s.favorites[uid], nil
}

func (s *staticRooms) PublicRooms(context.Context) ([]domain.Room, error) {
	if s.pubErr != nil {
		return nil, s.pubErr
	}
	return s.public, nil
}
