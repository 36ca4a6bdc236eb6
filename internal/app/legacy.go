package app

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

const (
	SignInPath = "/signin"
	VerifyPath = "/verify"

	legacySignInParam    = "sign_in"
	legacyAuthTopicParam = "auth_topic"
	legacyNewHubParam    = "new"
)

// LegacyLinkRedirector honours old-format landing page links. One instance
// serves one page load.
type LegacyLinkRedirector struct {
	hubs core.HubCreator
	once sync.Once
}

func NewLegacyLinkRedirector(hubs core.HubCreator) *LegacyLinkRedirector {
	return &LegacyLinkRedirector{hubs: hubs}
}

// Mount runs the redirect step for pageURL. Only the first call does anything.
//
// sign_in and auth_topic are exclusive. new is checked independently of them,
// so ?sign_in=1&new=1 both navigates to sign-in and creates a hub; which
// navigation wins is up to nav.
func (r *LegacyLinkRedirector) Mount(ctx context.Context, pageURL *url.URL, auth domain.AuthContext, nav core.Navigator) error {
	var err error
	r.once.Do(func() {
		err = r.mount(ctx, pageURL, auth, nav)
	})
	return err
}

func (r *LegacyLinkRedirector) mount(ctx context.Context, pageURL *url.URL, auth domain.AuthContext, nav core.Navigator) error {
	if pageURL == nil {
		return nil
	}
	qs := pageURL.Query()

	if qs.Has(legacySignInParam) {
		nav.Navigate(sameQuery(SignInPath, pageURL))
	} else if qs.Has(legacyAuthTopicParam) {
		nav.Navigate(sameQuery(VerifyPath, pageURL))
	}

	if qs.Has(legacyNewHubParam) {
		req := core.HubRequest{ForceRedirect: true, Auth: auth}
		if _, err := r.hubs.CreateAndRedirectToNewHub(ctx, req, nav); err != nil {
			log.Warn().Err(err).Str("module", "app.legacy").Msg("legacy new hub link failed")
			return fmt.Errorf("legacy new hub: %w", err)
		}
	}
	return nil
}

func sameQuery(path string, from *url.URL) string {
	return (&url.URL{Path: path, RawQuery: from.RawQuery}).String()
}
