package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Brightbeam-Media/lumen/internal/db"
	"github.com/Brightbeam-Media/lumen/internal/http/api"
	"github.com/Brightbeam-Media/lumen/internal/http/api/player/packets"
)

type SyncController struct {
	store db.Store
}

func NewSyncController(store db.Store) *SyncController {
	return &SyncController{store: store}
}

// SyncModule serves the device pull endpoint. Players poll it on their own
// cadence; the scheduler never pushes to them.
func SyncModule(store db.Store) api.Module {
	ctl := NewSyncController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/current", ctl.getCurrentPlaylist)
	})
}

// GET /api/player/current?device_id=...
func (s *SyncController) getCurrentPlaylist(ctx *gin.Context) (any, *api.APIError) {
	deviceID := ctx.Query("device_id")
	if deviceID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "device_id is required"}
	}

	player, err := s.store.GetPlayerByDeviceID(deviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "unknown device"}
	}

	assignment, err := s.store.GetCurrentAssignment(player.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load assignment"}
	}
	if assignment == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no playlist assigned"}
	}

	playlist, err := s.store.GetPlaylistByID(assignment.PlaylistID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load playlist"}
	}

	return packets.CurrentPlaylistResponse{
		PlayerID:   player.ID,
		Playlist:   playlist,
		Priority:   assignment.Priority,
		Provenance: assignment.ScheduleConfig,
	}, nil
}
