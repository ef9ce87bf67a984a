package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds secondary indexes that AutoMigrate does not create
// from struct tags. Postgres only; MySQL deployments get the same
// indexes from the tag-driven migration plus manual DDL.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Registration lookups by gathering and by status drive both
		// the capacity count and the admin listing filters.
		{"registrations", "idx_registrations_gathering_id", "gathering_id"},
		{"registrations", "idx_registrations_member_id", "member_id"},
		{"registrations", "idx_registrations_status", "status"},
		{"registrations", "idx_registrations_registered_at", "registered_at"},

		// Public page lists active gatherings ordered by date.
		{"gatherings", "idx_gatherings_is_active", "is_active"},
		{"gatherings", "idx_gatherings_date", "date"},

		{"members", "idx_members_group_id", "group_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
