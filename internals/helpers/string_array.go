package helper

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringArray is a text[] column on Postgres. Other dialects store the
// same array literal in a text column.
type StringArray pq.StringArray

func (a StringArray) Value() (driver.Value, error) { return pq.StringArray(a).Value() }

func (a *StringArray) Scan(src any) error { return (*pq.StringArray)(a).Scan(src) }

func (StringArray) GormDataType() string { return "text" }

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
