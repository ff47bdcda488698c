package handler

import (
	"time"

	"github.com/nlowell/fsubs/internal/model"
)

// Response payloads. Authentication material never leaves the store layer.

type apiMetadata struct {
	DateCreated  string `json:"date_created"`
	CreatedBy    string `json:"created_by"`
	LastModified string `json:"last_modified"`
	ModifiedBy   string `json:"modified_by"`
}

func metadataToAPI(m model.Metadata) apiMetadata {
	return apiMetadata{
		DateCreated:  m.DateCreated.UTC().Format(time.RFC3339),
		CreatedBy:    m.CreatedBy,
		LastModified: m.LastModified.UTC().Format(time.RFC3339),
		ModifiedBy:   m.ModifiedBy,
	}
}

type apiVideo struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	ImdbID      string      `json:"imdb_id"`
	Description string      `json:"description"`
	Metadata    apiMetadata `json:"metadata"`
}

func videoToAPI(v *model.Video) apiVideo {
	return apiVideo{
		ID:          v.ID,
		Title:       v.Title,
		ImdbID:      v.ImdbID,
		Description: v.Description,
		Metadata:    metadataToAPI(v.Metadata),
	}
}

type apiVersion struct {
	ID          string      `json:"id"`
	VideoBaseID string      `json:"video_base_id"`
	DiscType    string      `json:"disc_type"`
	Region      string      `json:"region"`
	SubType     string      `json:"sub_type"`
	Timestamps  []string    `json:"timestamps"`
	Description string      `json:"description"`
	Track       *int        `json:"track"`
	Metadata    apiMetadata `json:"metadata"`
}

func versionToAPI(v *model.Version) apiVersion {
	ts := v.Timestamps
	if ts == nil {
		ts = []string{}
	}
	return apiVersion{
		ID:          v.ID,
		VideoBaseID: v.VideoBaseID,
		DiscType:    v.DiscType,
		Region:      v.Region,
		SubType:     v.SubType,
		Timestamps:  ts,
		Description: v.Description,
		Track:       v.Track,
		Metadata:    metadataToAPI(v.Metadata),
	}
}

type apiEpisode struct {
	ID          string      `json:"id"`
	TVShowID    string      `json:"tv_show_id"`
	Title       string      `json:"title"`
	ImdbID      string      `json:"imdb_id"`
	Description string      `json:"description"`
	Season      int         `json:"season"`
	Episode     int         `json:"episode"`
	Metadata    apiMetadata `json:"metadata"`
}

func episodeToAPI(e *model.Episode) apiEpisode {
	return apiEpisode{
		ID:          e.ID,
		TVShowID:    e.TVShowID,
		Title:       e.Title,
		ImdbID:      e.ImdbID,
		Description: e.Description,
		Season:      e.Season,
		Episode:     e.Episode,
		Metadata:    metadataToAPI(e.Metadata),
	}
}

type apiUser struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Access   string      `json:"access"`
	Verified bool        `json:"verified"`
	Metadata apiMetadata `json:"metadata"`
}

func userToAPI(u *model.User) apiUser {
	return apiUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Access:   string(u.Access),
		Verified: u.Verified,
		Metadata: metadataToAPI(u.Metadata),
	}
}

// Request payloads.

type videoRequest struct {
	Title       string `json:"title" validate:"required"`
	ImdbID      string `json:"imdb_id"`
	Description string `json:"description"`
}

type versionRequest struct {
	DiscType    string   `json:"disc_type" validate:"omitempty,oneof=BD BD3D DVD UHD WEB-DL UNKNOWN"`
	Region      string   `json:"region" validate:"omitempty,oneof='Region 0' 'Region 1' 'Region 2' 'Region 3' 'Region 4' 'Region 5' 'Region 6' 'Region 7' 'Region 8' ALL A B C UNKNOWN"`
	SubType     string   `json:"sub_type" validate:"omitempty,oneof=Separate Hardcoded Forced Unknown"`
	Timestamps  []string `json:"timestamps"`
	Description string   `json:"description"`
	Track       *int     `json:"track" validate:"omitempty,min=0"`
}

func (vr *versionRequest) applyDefaults() {
	if vr.DiscType == "" {
		vr.DiscType = model.DiscUnknown
	}
	if vr.Region == "" {
		vr.Region = "UNKNOWN"
	}
	if vr.SubType == "" {
		vr.SubType = model.SubUnknown
	}
}

type episodeRequest struct {
	Title       string `json:"title" validate:"required"`
	ImdbID      string `json:"imdb_id"`
	Description string `json:"description"`
	Season      int    `json:"season" validate:"min=0"`
	Episode     int    `json:"episode" validate:"min=0"`
}

type idResponse struct {
	ID string `json:"id"`
}
