package app

import "github.com/dkeye/Lobby/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	MarkSlow
	KickMember
	DropFrame
)

// Policy decides what happens to a presence client that cannot keep up.
type Policy interface {
	OnBackPressure(room core.PresenceRoom, member core.MemberSession) BackpressureAction
}

type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(room core.PresenceRoom, member core.MemberSession) BackpressureAction {
	return KickMember
}
