package schedule

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

type fakeStore struct {
	schedules []model.Schedule
	playlists map[int]model.Playlist
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		playlists: map[int]model.Playlist{
			7: {ID: 7, TenantID: 1, Name: "promos"},
			8: {ID: 8, TenantID: 1, Name: "menus"},
		},
	}
}

func (f *fakeStore) CreateSchedule(s model.Schedule) (model.Schedule, error) {
	f.nextID++
	s.ID = f.nextID
	f.schedules = append(f.schedules, s)
	return s, nil
}

func (f *fakeStore) GetSchedule(id int) (model.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Schedule{}, sql.ErrNoRows
}

func (f *fakeStore) UpdateSchedule(s model.Schedule) (model.Schedule, error) {
	for i := range f.schedules {
		if f.schedules[i].ID == s.ID {
			f.schedules[i] = s
			return s, nil
		}
	}
	return model.Schedule{}, sql.ErrNoRows
}

func (f *fakeStore) DeleteSchedule(id int) error {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStore) ListSchedulesForTenant(tenantID int) ([]model.Schedule, error) {
	var out []model.Schedule
	for _, s := range f.schedules {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) GetPlaylistByID(id int) (model.Playlist, error) {
	pl, ok := f.playlists[id]
	if !ok {
		return model.Playlist{}, sql.ErrNoRows
	}
	return pl, nil
}

func newTestService(store Store) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return validationNow }
	return svc
}

func mondayInput(playlistID, priority int, start, end string) ScheduleInput {
	return ScheduleInput{
		TenantID:   1,
		PlaylistID: playlistID,
		Name:       "monday window",
		StartTime:  strPtr(start),
		EndTime:    strPtr(end),
		DaysOfWeek: []int64{1},
		Priority:   priority,
	}
}

func TestCreateScheduleValidationFailure(t *testing.T) {
	svc := newTestService(newFakeStore())

	in := mondayInput(7, 3, "10:00", "12:00")
	in.Name = ""
	_, err := svc.Create(in)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs)
}

func TestCreateScheduleUnknownPlaylist(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(mondayInput(99, 3, "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateScheduleConflict(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	first, err := svc.Create(mondayInput(7, 3, "10:00", "12:00"))
	require.NoError(t, err)

	// second window overlaps the first on the same tenant
	_, err = svc.Create(mondayInput(8, 2, "11:00", "13:00"))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int{first.ID}, conflict.IDs())
	assert.Len(t, store.schedules, 1, "no schedule is created on conflict")
}

func TestCreateScheduleWithOverride(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	first, err := svc.Create(mondayInput(7, 3, "10:00", "12:00"))
	require.NoError(t, err)

	second, err := svc.CreateWithOverride(mondayInput(8, 2, "11:00", "13:00"))
	require.NoError(t, err)
	assert.Len(t, store.schedules, 2)

	// the existing schedule is left untouched; priority arbitrates
	kept, err := svc.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, kept)

	winner, err := svc.WinnerAt(at(monday, 11, 30), 1)
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, first.ID, winner.ID, "priority 3 beats priority 2 at 11:30")
	assert.NotEqual(t, second.ID, winner.ID)
}

func TestActiveSchedulesAtOrdering(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(mondayInput(7, 2, "10:00", "12:00"))
	require.NoError(t, err)
	s2, err := svc.CreateWithOverride(mondayInput(8, 5, "10:00", "12:00"))
	require.NoError(t, err)

	active, err := svc.ActiveSchedulesAt(at(monday, 11, 0), 1)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, s2.ID, active[0].ID, "priority 5 sorts first")

	winner, err := svc.WinnerAt(at(monday, 11, 0), 1)
	require.NoError(t, err)
	assert.Equal(t, s2.ID, winner.ID)

	none, err := svc.ActiveSchedulesAt(at(tuesday, 11, 0), 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateScheduleAllowsPastStartDate(t *testing.T) {
	svc := newTestService(newFakeStore())

	created, err := svc.Create(mondayInput(7, 3, "10:00", "12:00"))
	require.NoError(t, err)

	in := mondayInput(7, 3, "10:00", "12:00")
	in.StartDate = datePtr(2025, 8, 1)
	updated, err := svc.Update(created.ID, in, false)
	require.NoError(t, err)
	require.NotNil(t, updated.StartDate)
	assert.Equal(t, *datePtr(2025, 8, 1), *updated.StartDate)
}

func TestUpdateScheduleConflictChecksOthers(t *testing.T) {
	svc := newTestService(newFakeStore())

	first, err := svc.Create(mondayInput(7, 3, "10:00", "12:00"))
	require.NoError(t, err)
	second, err := svc.CreateWithOverride(mondayInput(8, 2, "13:00", "14:00"))
	require.NoError(t, err)

	// moving the second window onto the first is rejected without override
	_, err = svc.Update(second.ID, mondayInput(8, 2, "11:00", "12:30"), false)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int{first.ID}, conflict.IDs())

	// shrinking the second window in place does not conflict with itself
	_, err = svc.Update(second.ID, mondayInput(8, 2, "13:00", "13:30"), false)
	assert.NoError(t, err)
}

func TestDeleteScheduleRemovesFromResolution(t *testing.T) {
	svc := newTestService(newFakeStore())

	created, err := svc.Create(mondayInput(7, 3, "10:00", "12:00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	winner, err := svc.WinnerAt(at(monday, 11, 0), 1)
	require.NoError(t, err)
	assert.Nil(t, winner)

	_, err = svc.Get(created.ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
