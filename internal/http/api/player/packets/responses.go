package packets

import "github.com/Brightbeam-Media/lumen/internal/model"

// CurrentPlaylistResponse tells a device what to show and why. Provenance
// names the schedule (or the tenant default) behind the assignment so the
// device can display it for debugging.
type CurrentPlaylistResponse struct {
	PlayerID   int              `json:"player_id"`
	Playlist   model.Playlist   `json:"playlist"`
	Priority   int              `json:"priority"`
	Provenance model.Provenance `json:"provenance"`
}
