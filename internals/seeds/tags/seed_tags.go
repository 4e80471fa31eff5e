package tags

import (
	_ "embed"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/features/events/model"
)

//go:embed data_tags.json
var defaultTags []byte

type TagSeed struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SeedTags inserts the default event tags; existing names are left alone.
func SeedTags(db *gorm.DB, log zerolog.Logger) (int64, error) {
	var seeds []TagSeed
	if err := sonic.Unmarshal(defaultTags, &seeds); err != nil {
		return 0, fmt.Errorf("decode tag seeds: %w", err)
	}

	var created int64
	for _, s := range seeds {
		res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&model.TagModel{Name: s.Name, Color: s.Color})
		if res.Error != nil {
			return created, fmt.Errorf("seed tag %q: %w", s.Name, res.Error)
		}
		if res.RowsAffected == 0 {
			log.Debug().Str("tag", s.Name).Msg("tag exists, skipped")
			continue
		}
		created += res.RowsAffected
	}
	return created, nil
}
