// exposes a Store interface that is passed to API handlers and the
// scheduler instead of the raw connection
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

type Store interface {
	// user functions
	CreateUser(tenantID int, email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// tenant functions
	GetTenantByID(id int) (*model.Tenant, error)
	ListActiveTenants() ([]model.Tenant, error)

	// playlist functions
	CreatePlaylist(tenantID int, name string, description *string) (model.Playlist, error)
	GetPlaylistByID(id int) (model.Playlist, error)
	ListPlaylists(tenantID int) ([]model.Playlist, error)
	UpdatePlaylist(id int, name, description *string) error
	DeletePlaylist(id int) error
	SetDefaultPlaylist(tenantID, playlistID int) error
	GetDefaultPlaylist(tenantID int) (*model.Playlist, error)

	// player functions
	CreatePlayer(tenantID int, name string, location *string) (model.Player, error)
	GetPlayerByID(id int) (model.Player, error)
	GetPlayerByDeviceID(deviceID string) (model.Player, error)
	ListActivePlayers(tenantID int) ([]model.Player, error)
	GetCurrentAssignment(playerID int) (*model.PlayerPlaylist, error)
	ReplacePlayerAssignment(playerID int, assignment model.PlayerPlaylist) error

	// schedule functions
	CreateSchedule(s model.Schedule) (model.Schedule, error)
	GetSchedule(id int) (model.Schedule, error)
	UpdateSchedule(s model.Schedule) (model.Schedule, error)
	DeleteSchedule(id int) error
	ListSchedulesForTenant(tenantID int) ([]model.Schedule, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	if conn == nil {
		conn = DB
	}
	return &pgStore{db: conn}
}
