package media

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/purdeep/studio-backend/database"
	"github.com/purdeep/studio-backend/models"
)

func TestSweepUnused(t *testing.T) {
	dataDir := t.TempDir()
	db := database.New(database.NewStore(dataDir))

	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	keptProject, err := p.Derive(pngBytes(t, 40, 40, baseColor), "kept.png", "projects/hotel/1")
	require.NoError(t, err)
	keptTeam, err := p.Derive(pngBytes(t, 40, 40, baseColor), "ana.png", "team")
	require.NoError(t, err)
	orphan, err := p.Derive(pngBytes(t, 40, 40, baseColor), "orphan.png", "projects/villa/9")
	require.NoError(t, err)

	require.NoError(t, db.ProjectRepo().ReplaceAll([]models.Project{
		{ID: 1, Title: "Harbor Hotel", Images: []string{keptProject}},
	}))
	require.NoError(t, db.TeamRepo().ReplaceAll([]models.TeamMember{
		{ID: 1, Name: "Ana", Image: keptTeam},
	}))

	require.NoError(t, SweepUnused(db, p))

	toPath := func(url string) string {
		return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/images/uploads/")))
	}
	require.FileExists(t, toPath(keptProject))
	require.FileExists(t, toPath(keptTeam))
	require.NoFileExists(t, toPath(orphan))
}

func TestSweepUnused_UnreadableTeamCollectionIsNotFatal(t *testing.T) {
	dataDir := t.TempDir()
	db := database.New(database.NewStore(dataDir))

	root := t.TempDir()
	p := NewPipeline(Config{}, NewDirTarget(root))

	kept, err := p.Derive(pngBytes(t, 40, 40, baseColor), "kept.png", "projects/other/2")
	require.NoError(t, err)

	// Projects exist, team.json does not. The sweep must still run.
	require.NoError(t, db.ProjectRepo().ReplaceAll([]models.Project{
		{ID: 2, Title: "Atrium", Images: []string{kept}},
	}))

	require.NoError(t, SweepUnused(db, p))
	require.FileExists(t, filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(kept, "/images/uploads/"))))
}
