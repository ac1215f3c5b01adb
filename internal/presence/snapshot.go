// internal/presence/snapshot.go
package presence

import "github.com/bwmarrin/discordgo"

// Status is the presence state reported by the upstream API.
type Status = discordgo.Status

const (
	StatusOnline       = discordgo.StatusOnline
	StatusIdle         = discordgo.StatusIdle
	StatusDoNotDisturb = discordgo.StatusDoNotDisturb
	StatusOffline      = discordgo.StatusOffline
)

// User is the identity part of a presence snapshot.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator,omitempty"`
	GlobalName    string `json:"global_name,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
}

// Timestamps are epoch milliseconds; zero means unset.
type Timestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

// Activity is one foreground activity (game, stream, custom status...).
type Activity struct {
	ID            string                 `json:"id,omitempty"`
	Name          string                 `json:"name"`
	Type          discordgo.ActivityType `json:"type"`
	ApplicationID string                 `json:"application_id,omitempty"`
	Details       string                 `json:"details,omitempty"`
	State         string                 `json:"state,omitempty"`
	Timestamps    *Timestamps            `json:"timestamps,omitempty"`
	Assets        *Assets                `json:"assets,omitempty"`
}

// Spotify is the music-listening sub-record.
type Spotify struct {
	TrackID     string     `json:"track_id"`
	Timestamps  Timestamps `json:"timestamps"`
	Song        string     `json:"song"`
	Artist      string     `json:"artist"`
	Album       string     `json:"album"`
	AlbumArtURL string     `json:"album_art_url"`
}

// Snapshot is the presence value exchanged over the wire.
type Snapshot struct {
	User               User       `json:"discord_user"`
	Status             Status     `json:"discord_status"`
	Activities         []Activity `json:"activities"`
	ListeningToSpotify bool       `json:"listening_to_spotify"`
	Spotify            *Spotify   `json:"spotify"`
}

// Envelope is the response body of both the upstream API and the proxy.
// Cached and CacheAge are only set by the proxy.
type Envelope struct {
	Success  bool      `json:"success"`
	Data     *Snapshot `json:"data,omitempty"`
	Error    string    `json:"error,omitempty"`
	Cached   *bool     `json:"cached,omitempty"`
	CacheAge *int64    `json:"cacheAge,omitempty"`
}

// KnownStatus reports whether s is one of the four presence states.
func KnownStatus(s Status) bool {
	switch s {
	case StatusOnline, StatusIdle, StatusDoNotDisturb, StatusOffline:
		return true
	}
	return false
}
