package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByShareID matches the public share identifier. Unshared rows have a NULL
// share_id and can never match.
type ByShareID struct {
	ShareID uuid.UUID
}

func (s ByShareID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("share_id = ?", s.ShareID)
}

type IsShared struct{}

func (s IsShared) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("share_id IS NOT NULL")
}

type OwnedBy struct {
	OwnerID string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}
