// Package store persists build output to Postgres so the API can serve it
// without re-reading the build files.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"horse.fit/atlas/internal/config"
	"horse.fit/atlas/internal/record"
)

type Store struct {
	gdb   *gorm.DB
	sqlDB *sql.DB
}

// Open connects, sizes the pool, pings and auto-migrates the two tables.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if err := cfg.RequireDatabaseURL(); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(resolveGormLogLevel(cfg.LogLevel, cfg.Environment)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get gorm sql db: %w", err)
	}

	maxOpen := int(cfg.DBMaxConns)
	if maxOpen <= 0 {
		maxOpen = 4
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(max(1, min(int(cfg.DBMinConns), maxOpen)))
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := gdb.WithContext(ctx).AutoMigrate(autoMigrateModels()...); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto-migrate schema: %w", err)
	}

	return &Store{gdb: gdb, sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("store is not initialized")
	}
	return s.sqlDB.PingContext(ctx)
}

// Replace swaps the stored build for the given one in a single transaction.
func (s *Store) Replace(ctx context.Context, output map[string][]record.Language) error {
	if s == nil || s.gdb == nil {
		return fmt.Errorf("store is not initialized")
	}

	return s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&LanguageRow{}).Error; err != nil {
			return fmt.Errorf("clear language entries: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&CountryRecord{}).Error; err != nil {
			return fmt.Errorf("clear country records: %w", err)
		}

		now := time.Now().UTC()
		for countryCode, languages := range output {
			if err := tx.Create(&CountryRecord{CountryCode: countryCode, StoredAt: now}).Error; err != nil {
				return fmt.Errorf("insert country %s: %w", countryCode, err)
			}
			rows := rowsFromLanguages(countryCode, languages)
			if len(rows) == 0 {
				continue
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("insert languages for %s: %w", countryCode, err)
			}
		}
		return nil
	})
}

// Countries returns the stored country codes in sorted order.
func (s *Store) Countries(ctx context.Context) ([]string, error) {
	if s == nil || s.gdb == nil {
		return nil, fmt.Errorf("store is not initialized")
	}

	var codes []string
	err := s.gdb.WithContext(ctx).
		Model(&CountryRecord{}).
		Order("country_code").
		Pluck("country_code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return codes, nil
}

// Languages returns the stored records for one country. The boolean result
// reports whether the country exists in the stored build.
func (s *Store) Languages(ctx context.Context, countryCode string) ([]record.Language, bool, error) {
	if s == nil || s.gdb == nil {
		return nil, false, fmt.Errorf("store is not initialized")
	}

	var count int64
	if err := s.gdb.WithContext(ctx).
		Model(&CountryRecord{}).
		Where("country_code = ?", countryCode).
		Count(&count).Error; err != nil {
		return nil, false, fmt.Errorf("check country: %w", err)
	}
	if count == 0 {
		return nil, false, nil
	}

	var rows []LanguageRow
	if err := s.gdb.WithContext(ctx).
		Where("country_code = ?", countryCode).
		Order("position").
		Find(&rows).Error; err != nil {
		return nil, false, fmt.Errorf("load languages: %w", err)
	}

	return languagesFromRows(rows), true, nil
}

func rowsFromLanguages(countryCode string, languages []record.Language) []LanguageRow {
	rows := make([]LanguageRow, 0, len(languages))
	for _, lang := range languages {
		rows = append(rows, LanguageRow{
			CountryCode: countryCode,
			Label:       lang.Label,
			Code:        lang.Code,
			Percent:     lang.Percent,
			Official:    lang.Official,
			Position:    lang.Position,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	return rows
}

func languagesFromRows(rows []LanguageRow) []record.Language {
	languages := make([]record.Language, 0, len(rows))
	for _, row := range rows {
		languages = append(languages, record.Language{
			Label:    row.Label,
			Code:     row.Code,
			Percent:  row.Percent,
			Official: row.Official,
			Position: row.Position,
		})
	}
	return languages
}

func resolveGormLogLevel(appLogLevel, environment string) logger.LogLevel {
	level := strings.ToLower(strings.TrimSpace(appLogLevel))
	switch level {
	case "trace", "debug":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	case "error", "fatal", "panic":
		return logger.Error
	default:
		if strings.EqualFold(strings.TrimSpace(environment), "local") {
			return logger.Warn
		}
		return logger.Silent
	}
}
