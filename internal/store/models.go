package store

import "time"

// CountryRecord maps country_records: one row per country present in the
// last stored build.
type CountryRecord struct {
	CountryCode string    `gorm:"column:country_code;type:text;primaryKey"`
	StoredAt    time.Time `gorm:"column:stored_at;type:timestamptz;not null;default:now()"`
}

func (CountryRecord) TableName() string { return "country_records" }

// LanguageRow maps language_entries: one exported language record.
type LanguageRow struct {
	ID          int64    `gorm:"column:id;primaryKey;autoIncrement"`
	CountryCode string   `gorm:"column:country_code;type:text;not null;index"`
	Label       string   `gorm:"column:label;type:text;not null"`
	Code        *string  `gorm:"column:code;type:text"`
	Percent     *float64 `gorm:"column:percent;type:double precision"`
	Official    bool     `gorm:"column:official;type:boolean;not null;default:false"`
	Position    int      `gorm:"column:position;type:integer;not null"`
}

func (LanguageRow) TableName() string { return "language_entries" }

func autoMigrateModels() []any {
	return []any{
		&CountryRecord{},
		&LanguageRow{},
	}
}
