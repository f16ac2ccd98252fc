package specification

import "gorm.io/gorm"

// ByCategory scopes knowledge rows to one partition
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// PresetOnly keeps system-seeded rows
type PresetOnly struct{}

func (s PresetOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_preset = ?", true)
}

// BySessionKey scopes conversation log rows to one session
type BySessionKey struct {
	SessionKey string
}

func (s BySessionKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_key = ?", s.SessionKey)
}
