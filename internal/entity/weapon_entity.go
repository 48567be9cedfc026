package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Weapon struct {
	Id          uuid.UUID
	OwnerId     *string
	Prompt      string
	ModelUrl    *string
	ModelPath   *string
	BugLevel    *float32
	PitchText   *string
	SaleSuccess *bool
	TripoTaskId *string
	Metadata    json.RawMessage
	ShareId     *uuid.UUID
	CreatedAt   time.Time
	SharedAt    *time.Time
}

func (w *Weapon) IsShared() bool {
	return w.ShareId != nil
}

type SharedWeapon struct {
	Id          uuid.UUID
	Prompt      string
	ModelUrl    *string
	BugLevel    *float32
	PitchText   *string
	SaleSuccess *bool
	Metadata    json.RawMessage
	CreatedAt   time.Time
	SharedAt    *time.Time
}
