package database

import (
	"errors"
	"os"

	"github.com/purdeep/studio-backend/models"
)

const projectsDocument = "projects.json"

type ProjectRepo struct {
	store *Store
}

func NewProjectRepo(store *Store) *ProjectRepo {
	return &ProjectRepo{store}
}

// FindAll returns the full project collection. A missing document reads as an
// empty collection, not an error.
func (r *ProjectRepo) FindAll() ([]models.Project, error) {
	var projects []models.Project
	err := r.store.load(projectsDocument, &projects)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Project{}, nil
	}
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ReplaceAll overwrites the stored collection with the given one.
func (r *ProjectRepo) ReplaceAll(projects []models.Project) error {
	return r.store.save(projectsDocument, projects)
}

// DeleteByID removes the project matching id and persists the remainder.
// The removed record is returned so the caller can clean up its images.
func (r *ProjectRepo) DeleteByID(id int) (*models.Project, error) {
	projects, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var removed *models.Project
	remaining := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.ID == id {
			deleted := p
			removed = &deleted
			continue
		}
		remaining = append(remaining, p)
	}

	if removed == nil {
		return nil, nil
	}

	if err := r.store.save(projectsDocument, remaining); err != nil {
		return nil, err
	}
	return removed, nil
}
