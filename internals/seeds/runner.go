package seeds

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"msns_backend/internals/seeds/sessions"
	"msns_backend/internals/seeds/tags"
)

// RunAllSeeds is idempotent; running it twice inserts nothing the second time.
func RunAllSeeds(db *gorm.DB, log zerolog.Logger, now time.Time) error {
	n, err := tags.SeedTags(db, log)
	if err != nil {
		return err
	}
	log.Info().Int64("created", n).Msg("tags seeded")

	created, err := sessions.SeedCurrentSession(db, log, now)
	if err != nil {
		return err
	}
	log.Info().Bool("created", created).Msg("academic session seeded")
	return nil
}
