package domain

import "errors"

var (
	ErrHubNotFound          = errors.New("hub not found")
	ErrHubExists            = errors.New("hub already exists")
	ErrRoomCreationDisabled = errors.New("room creation disabled")
	ErrUnknownScene         = errors.New("unknown scene")
	ErrUnknownSource        = errors.New("unknown media source")
	ErrInvalidCursor        = errors.New("invalid cursor")
)
