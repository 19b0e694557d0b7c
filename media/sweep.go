package media

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/purdeep/studio-backend/database"
)

// SweepUnused deletes every stored media file no project or team record
// references. It is an offline maintenance pass, never run from the request
// path; image lifecycle during normal operation stays caller-driven.
func SweepUnused(db database.Database, p *Pipeline) error {
	used := make(map[string]bool)

	projects, err := db.ProjectRepo().FindAll()
	if err != nil {
		return err
	}
	for _, proj := range projects {
		for _, img := range proj.Images {
			used[img] = true
		}
	}

	team, err := db.TeamRepo().FindAll()
	if err == nil {
		for _, m := range team {
			if m.Image != "" {
				used[m.Image] = true
			}
		}
	} else {
		log.Warn().Err(err).Msg("sweep: team collection unreadable, skipping")
	}

	log.Info().Int("referenced", len(used)).Msg("sweep: collected referenced media")

	for _, t := range p.targets {
		deleted := 0
		err := t.Walk(func(rel string) error {
			url := p.assetPrefix + "/" + strings.TrimPrefix(rel, "/")
			if used[url] {
				return nil
			}
			if err := t.Remove(rel); err != nil {
				log.Error().Err(err).Str("target", t.Name()).Str("file", rel).Msg("sweep: delete failed")
				return nil
			}
			deleted++
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("target", t.Name()).Msg("sweep: walk failed")
			continue
		}
		log.Info().Str("target", t.Name()).Int("deleted", deleted).Msg("sweep: target done")
	}
	return nil
}
