package database

type Database struct {
	projectRepo *ProjectRepo
	teamRepo    *TeamRepo
	messageRepo *MessageRepo
}

// New initializes a new Database struct with each repository using a shared document store
func New(store *Store) Database {
	return Database{
		projectRepo: NewProjectRepo(store),
		teamRepo:    NewTeamRepo(store),
		messageRepo: NewMessageRepo(store),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TeamRepo() *TeamRepo {
	return d.teamRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}
