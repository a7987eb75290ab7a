package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Brightbeam-Media/lumen/internal/db"
	"github.com/Brightbeam-Media/lumen/internal/http/api"
	"github.com/Brightbeam-Media/lumen/internal/http/api/admin/packets"
	"github.com/Brightbeam-Media/lumen/internal/model"
)

type PlayerController struct {
	store db.Store
}

func NewPlayerController(store db.Store) *PlayerController {
	return &PlayerController{store: store}
}

func PlayerModule(store db.Store) api.Module {
	ctl := NewPlayerController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/players", ctl.listPlayers)
		c.POST("/players", ctl.createPlayer)
		c.GET("/players/:id", ctl.getPlayer)
	})
}

func (p *PlayerController) listPlayers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	players, err := p.store.ListActivePlayers(user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list players"}
	}

	response := make([]packets.PlayerResponse, 0, len(players))
	for _, player := range players {
		response = append(response, p.playerResponse(player))
	}
	return response, nil
}

func (p *PlayerController) createPlayer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePlayerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	player, err := p.store.CreatePlayer(user.TenantID, request.Name, request.Location)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create player"}
	}
	return p.playerResponse(player), nil
}

func (p *PlayerController) getPlayer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	player, err := p.store.GetPlayerByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "player not found"}
	}
	if player.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return p.playerResponse(player), nil
}

// playerResponse attaches the current assignment and its provenance so
// operators can see which schedule justified what each player is showing.
func (p *PlayerController) playerResponse(player model.Player) packets.PlayerResponse {
	response := packets.PlayerResponse{
		ID:       player.ID,
		DeviceID: player.DeviceID,
		Name:     player.Name,
		Location: player.Location,
		IsActive: player.IsActive,
	}
	if assignment, err := p.store.GetCurrentAssignment(player.ID); err == nil && assignment != nil {
		a := packets.NewAssignmentResponse(*assignment)
		response.Assignment = &a
	}
	return response
}
