package domain

type RoomID string

type Image struct {
	URL string `json:"url"`
}

type RoomImages struct {
	Preview Image `json:"preview"`
}

// Room is a hub record as listed to visitors. It is a comparable value:
// two rooms are the same entry only when every field matches.
type Room struct {
	ID          RoomID     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	SceneID     string     `json:"scene_id,omitempty"`
	Type        string     `json:"type"`
	MemberCount int        `json:"member_count"`
	RoomSize    int        `json:"room_size"`
	Public      bool       `json:"public"`
	CreatedAt   int64      `json:"created_at"`
	Images      RoomImages `json:"images"`
}

const RoomEntryType = "room"
