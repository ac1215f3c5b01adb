// internal/card/card.go
package card

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/tamzrod/activity-status/internal/presence"
	"github.com/tamzrod/activity-status/internal/status"
)

// DefaultBackground is shown behind the card unless music is playing.
const DefaultBackground = "assets/frieren-ost-spotify.jpg"

const avatarSize = "128"

// Branch selects what the card shows.
type Branch uint8

const (
	// BranchHidden renders nothing. Used for the error state.
	BranchHidden Branch = iota
	BranchSkeleton
	BranchMusic
	BranchActivity
	BranchStatus
)

var statusColors = map[presence.Status]string{
	presence.StatusOnline:       "#43b581",
	presence.StatusIdle:         "#faa61a",
	presence.StatusDoNotDisturb: "#f04747",
	presence.StatusOffline:      "#747f8d",
}

// StatusColor returns the dot color for a presence state.
// Unknown states get the offline color.
func StatusColor(s presence.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[presence.StatusOffline]
}

// View is the fully derived card, independent of any output medium.
type View struct {
	Branch Branch

	AvatarURL   string
	DisplayName string
	Handle      string
	StatusColor string
	Background  string

	Heading  string
	Title    string
	Subtitle string
}

// Derive computes the card for the current tracker state at time now.
func Derive(s status.Snapshot, now time.Time) View {
	switch s.State {
	case status.StateLoading:
		return View{Branch: BranchSkeleton}
	case status.StateReady:
		if s.Presence != nil {
			return derivePresence(s.Presence, now)
		}
	}
	return View{Branch: BranchHidden}
}

func derivePresence(p *presence.Snapshot, now time.Time) View {
	u := discordgo.User{ID: p.User.ID, Avatar: p.User.Avatar}
	v := View{
		AvatarURL:   u.AvatarURL(avatarSize),
		DisplayName: p.User.DisplayName,
		Handle:      "@" + p.User.Username,
		StatusColor: StatusColor(p.Status),
		Background:  DefaultBackground,
	}
	if v.DisplayName == "" {
		v.DisplayName = p.User.GlobalName
	}

	switch {
	case p.ListeningToSpotify && p.Spotify != nil:
		v.Branch = BranchMusic
		v.Heading = "listening to spotify !"
		v.Title = p.Spotify.Song
		v.Subtitle = "by " + p.Spotify.Artist
		if p.Spotify.AlbumArtURL != "" {
			v.Background = p.Spotify.AlbumArtURL
		}

	case len(p.Activities) > 0:
		a := p.Activities[0]
		v.Branch = BranchActivity
		v.Heading = "playing a game !"
		v.Title = a.Name
		if a.Timestamps != nil && a.Timestamps.Start != 0 {
			v.Subtitle = Elapsed(time.UnixMilli(a.Timestamps.Start), now)
		}

	default:
		v.Branch = BranchStatus
		v.Title = string(p.Status)
		if p.Status == presence.StatusOnline {
			v.Title = "online"
		}
	}
	return v
}
