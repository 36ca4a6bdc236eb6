// Package thumbnail builds URLs of scaled preview images served by a
// thumbnail proxy.
package thumbnail

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

const (
	TileWidth  = 355
	TileHeight = 200
)

type Scaler struct {
	server string
}

// New returns a Scaler for the given thumbnail server host (optionally with
// scheme). An empty server disables scaling and URLs pass through unchanged.
func New(server string) *Scaler {
	server = strings.TrimRight(strings.TrimSpace(server), "/")
	if server != "" && !strings.Contains(server, "://") {
		server = "https://" + server
	}
	return &Scaler{server: server}
}

// Scaled returns the URL of rawURL resized to fit width x height.
func (s *Scaler) Scaled(rawURL string, width, height int) string {
	if s == nil || s.server == "" || rawURL == "" {
		return rawURL
	}
	if u, err := url.Parse(rawURL); err != nil || !u.IsAbs() {
		// relative assets are served by us, not by the proxy
		return rawURL
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(rawURL))
	return fmt.Sprintf("%s/thumbnail/%s?w=%d&h=%d", s.server, encoded, width, height)
}
