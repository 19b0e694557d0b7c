package database

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/purdeep/studio-backend/models"
)

func newTestDatabase(t *testing.T) (Database, string) {
	dir := t.TempDir()
	return New(NewStore(dir)), dir
}

func sampleProjects() []models.Project {
	return []models.Project{
		{ID: 1, Title: "Harbor Hotel", Category: "Hotel Design", Year: "2023", Location: "Lisbon", Area: "4200m2", Services: []string{"interior", "lighting"}, Images: []string{"/images/uploads/projects/hotel/1/a.jpg"}},
		{ID: 2, Title: "Cliff Villa", Category: "Villa Design", Year: "2024", Location: "Porto", Area: "650m2", Images: []string{}},
	}
}

func TestProjectRepo_RoundTrip(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.ProjectRepo()

	submitted := sampleProjects()
	require.NoError(t, repo.ReplaceAll(submitted))

	got, err := repo.FindAll()
	require.NoError(t, err)
	require.Equal(t, submitted, got)
}

func TestProjectRepo_MissingDocumentReadsEmpty(t *testing.T) {
	db, _ := newTestDatabase(t)

	got, err := db.ProjectRepo().FindAll()
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestProjectRepo_DeleteByID(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.ProjectRepo()
	require.NoError(t, repo.ReplaceAll(sampleProjects()))

	removed, err := repo.DeleteByID(1)
	require.NoError(t, err)
	require.NotNil(t, removed)
	require.Equal(t, "Harbor Hotel", removed.Title)
	require.Equal(t, []string{"/images/uploads/projects/hotel/1/a.jpg"}, removed.Images)

	remaining, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, 2, remaining[0].ID)
}

func TestProjectRepo_DeleteByIDUnknownIsNoOp(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.ProjectRepo()
	require.NoError(t, repo.ReplaceAll(sampleProjects()))

	removed, err := repo.DeleteByID(99)
	require.NoError(t, err)
	require.Nil(t, removed)

	remaining, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, remaining, 2)
}

func TestTeamRepo_MissingDocumentIsError(t *testing.T) {
	db, _ := newTestDatabase(t)

	_, err := db.TeamRepo().FindAll()
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTeamRepo_RoundTrip(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.TeamRepo()

	team := []models.TeamMember{
		{ID: 1, Name: "Ana", Role: "Principal", Image: "/images/uploads/team/ana.jpg"},
		{ID: 2, Name: "Rui", Role: "Architect"},
	}
	require.NoError(t, repo.ReplaceAll(team))

	got, err := repo.FindAll()
	require.NoError(t, err)
	require.Equal(t, team, got)
}

func TestMessageRepo_PrependKeepsNewestFirst(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.MessageRepo()

	require.NoError(t, repo.Prepend(models.Message{ID: 1, Name: "first"}))
	require.NoError(t, repo.Prepend(models.Message{ID: 2, Name: "second"}))

	got, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(2), got[0].ID)
	require.Equal(t, int64(1), got[1].ID)
}

func TestMessageRepo_DeleteByIDs(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.MessageRepo()

	require.NoError(t, repo.Prepend(models.Message{ID: 1}))
	require.NoError(t, repo.Prepend(models.Message{ID: 2}))
	require.NoError(t, repo.Prepend(models.Message{ID: 3}))

	require.NoError(t, repo.DeleteByIDs([]int64{1, 3}))

	got, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)
}

func TestMessageRepo_DeleteByIDsMissingDocumentSucceeds(t *testing.T) {
	db, _ := newTestDatabase(t)

	require.NoError(t, db.MessageRepo().DeleteByIDs([]int64{1, 2}))
}

func TestStore_LastWriteWinsSequential(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.ProjectRepo()

	first := []models.Project{{ID: 1, Title: "first"}}
	second := []models.Project{{ID: 2, Title: "second"}}

	require.NoError(t, repo.ReplaceAll(first))
	require.NoError(t, repo.ReplaceAll(second))

	got, err := repo.FindAll()
	require.NoError(t, err)
	require.Equal(t, second, got)
}

// Concurrent replace-all calls race by design; the winner's payload must
// land intact. Writes go through rename, so the document can never be a
// merge or a torn file.
func TestStore_ConcurrentReplaceAllNeverTears(t *testing.T) {
	db, _ := newTestDatabase(t)
	repo := db.ProjectRepo()

	payloadA := []models.Project{{ID: 1, Title: "payload A"}, {ID: 2, Title: "payload A2"}}
	payloadB := []models.Project{{ID: 3, Title: "payload B"}}

	for i := 0; i < 20; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			require.NoError(t, repo.ReplaceAll(payloadA))
		}()
		go func() {
			defer wg.Done()
			require.NoError(t, repo.ReplaceAll(payloadB))
		}()
		wg.Wait()

		got, err := repo.FindAll()
		require.NoError(t, err)
		if len(got) == 2 {
			require.Equal(t, payloadA, got)
		} else {
			require.Equal(t, payloadB, got)
		}
	}
}

func TestStore_DocumentIsIndentedJSON(t *testing.T) {
	db, dir := newTestDatabase(t)
	require.NoError(t, db.ProjectRepo().ReplaceAll(sampleProjects()))

	data, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  {")
}
