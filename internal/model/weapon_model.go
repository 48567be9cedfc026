package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Weapon struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerId     *string        `gorm:"type:text;index"`
	Prompt      string         `gorm:"type:text;not null"`
	ModelUrl    *string        `gorm:"type:text"`
	ModelPath   *string        `gorm:"type:text"`
	BugLevel    *float32       `gorm:"type:real"`
	PitchText   *string        `gorm:"type:text"`
	SaleSuccess *bool          `gorm:"type:boolean"`
	TripoTaskId *string        `gorm:"type:text"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	ShareId     *uuid.UUID     `gorm:"type:uuid;uniqueIndex"`
	CreatedAt   time.Time      `gorm:"type:timestamptz;not null;autoCreateTime"`
	SharedAt    *time.Time     `gorm:"type:timestamptz"`
}

func (Weapon) TableName() string {
	return "weapons"
}

// SharedWeapon is the public projection of a weapons row.
type SharedWeapon struct {
	Id          uuid.UUID
	Prompt      string
	ModelUrl    *string
	BugLevel    *float32
	PitchText   *string
	SaleSuccess *bool
	Metadata    datatypes.JSON
	CreatedAt   time.Time
	SharedAt    *time.Time
}

func (SharedWeapon) TableName() string {
	return "weapons"
}

// SharedWeaponColumns are the only columns read for the public projection.
var SharedWeaponColumns = []string{
	"id", "prompt", "model_url", "bug_level", "pitch_text",
	"sale_success", "metadata", "created_at", "shared_at",
}
