package store

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the backing row for GormKV.
type KVEntry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value string `gorm:"type:text"`
}

// GormKV persists keys in a database table for server deployments where the
// service must survive host replacement. Same contract as the other KV
// implementations: errors are logged, never surfaced.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(key string) (string, bool) {
	var entry KVEntry
	if err := g.db.First(&entry, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("❌ KV read failed for %q: %v", key, err)
		}
		return "", false
	}
	return entry.Value, true
}

func (g *GormKV) Set(key, value string) {
	entry := KVEntry{Key: key, Value: value}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("❌ KV write failed for %q: %v", key, err)
	}
}

func (g *GormKV) Remove(key string) {
	if err := g.db.Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
		log.Printf("❌ KV delete failed for %q: %v", key, err)
	}
}
