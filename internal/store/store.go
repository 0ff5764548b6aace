package store

// Settings is the persisted configuration document. SuperAdmins are seeded
// from the environment at startup and are deliberately not part of it.
type Settings struct {
	OriginChannels      []int64  `json:"origin_channels"`
	DestinationChannels []int64  `json:"destination_channels"`
	Admins              []string `json:"admins"`
	Paused              bool     `json:"paused"`
}

// Store persists the settings document. Save fully replaces the previous
// document; there are no partial-field merges. Load never fails on a missing
// or malformed document - it falls back to the zero Settings and logs.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the backing slices.
func (s Settings) Clone() Settings {
	c := s
	c.OriginChannels = append([]int64(nil), s.OriginChannels...)
	c.DestinationChannels = append([]int64(nil), s.DestinationChannels...)
	c.Admins = append([]string(nil), s.Admins...)
	return c
}
