package model

// User is a catalog user. Salt and HashedPassword are the stored
// authentication material and are never serialized into responses.
type User struct {
	ID             string
	Username       string
	Email          string
	Access         Access
	Verified       bool
	Salt           string
	HashedPassword string
	Metadata       Metadata
}

// Video is a movie or a tv show.
type Video struct {
	ID          string
	Title       string
	ImdbID      string
	Description string
	Metadata    Metadata
}

// Episode is a single tv show episode.
type Episode struct {
	ID          string
	TVShowID    string
	Title       string
	ImdbID      string
	Description string
	Season      int
	Episode     int
	Metadata    Metadata
}

// Version is a single release of a video, e.g. the region B Blu-Ray of a
// movie or the DVD rip of an episode. VideoBaseID points at the parent
// movie or episode.
type Version struct {
	ID          string
	VideoBaseID string
	DiscType    string
	Region      string
	SubType     string
	Timestamps  []string
	Description string
	Track       *int
	Metadata    Metadata
}

// Disc types.
const (
	DiscBD      = "BD"
	DiscBD3D    = "BD3D"
	DiscDVD     = "DVD"
	DiscUHD     = "UHD"
	DiscWebDL   = "WEB-DL"
	DiscUnknown = "UNKNOWN"
)

// Subtitle kinds. Separate subs live on their own track, hardcoded subs
// are burned into the video, forced subs are a separate track flagged
// forced.
const (
	SubSeparate  = "Separate"
	SubHardcoded = "Hardcoded"
	SubForced    = "Forced"
	SubUnknown   = "Unknown"
)
