package database

import (
	"github.com/purdeep/studio-backend/models"
)

const teamDocument = "team.json"

type TeamRepo struct {
	store *Store
}

func NewTeamRepo(store *Store) *TeamRepo {
	return &TeamRepo{store}
}

// FindAll returns the team collection. Unlike projects and messages, a read
// failure (including a missing document) surfaces to the caller.
func (r *TeamRepo) FindAll() ([]models.TeamMember, error) {
	var team []models.TeamMember
	if err := r.store.load(teamDocument, &team); err != nil {
		return nil, err
	}
	return team, nil
}

// ReplaceAll overwrites the stored collection with the given one.
func (r *TeamRepo) ReplaceAll(team []models.TeamMember) error {
	return r.store.save(teamDocument, team)
}

// DeleteByID removes the member matching id and persists the remainder,
// returning the removed record so the caller can clean up its image.
func (r *TeamRepo) DeleteByID(id int) (*models.TeamMember, error) {
	team, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var removed *models.TeamMember
	remaining := make([]models.TeamMember, 0, len(team))
	for _, m := range team {
		if m.ID == id {
			deleted := m
			removed = &deleted
			continue
		}
		remaining = append(remaining, m)
	}

	if err := r.store.save(teamDocument, remaining); err != nil {
		return nil, err
	}
	return removed, nil
}
