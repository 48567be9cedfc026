package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateWeaponRequest struct {
	OwnerId     *string         `json:"owner_id"`
	Prompt      string          `json:"prompt" validate:"required"`
	ModelUrl    *string         `json:"model_url"`
	ModelPath   *string         `json:"model_path"`
	BugLevel    *float32        `json:"bug_level"`
	PitchText   *string         `json:"pitch_text"`
	SaleSuccess *bool           `json:"sale_success"`
	TripoTaskId *string         `json:"tripo_task_id"`
	Metadata    json.RawMessage `json:"metadata"`
	Share       *bool           `json:"share"`
}

// WeaponResponse is the full record, returned to the owner-facing endpoints.
type WeaponResponse struct {
	Id          uuid.UUID       `json:"id"`
	OwnerId     *string         `json:"owner_id"`
	Prompt      string          `json:"prompt"`
	ModelUrl    *string         `json:"model_url"`
	ModelPath   *string         `json:"model_path"`
	BugLevel    *float32        `json:"bug_level"`
	PitchText   *string         `json:"pitch_text"`
	SaleSuccess *bool           `json:"sale_success"`
	TripoTaskId *string         `json:"tripo_task_id"`
	Metadata    json.RawMessage `json:"metadata"`
	ShareId     *uuid.UUID      `json:"share_id"`
	CreatedAt   time.Time       `json:"created_at"`
	SharedAt    *time.Time      `json:"shared_at"`
}

// SharedWeaponResponse is the public view. owner_id, model_path and
// tripo_task_id are never part of it.
type SharedWeaponResponse struct {
	Id          uuid.UUID       `json:"id"`
	Prompt      string          `json:"prompt"`
	ModelUrl    *string         `json:"model_url"`
	BugLevel    *float32        `json:"bug_level"`
	PitchText   *string         `json:"pitch_text"`
	SaleSuccess *bool           `json:"sale_success"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
	SharedAt    *time.Time      `json:"shared_at"`
}
