package mapper

import (
	"bytes"
	"encoding/json"

	"weaponforge-be/internal/entity"
	"weaponforge-be/internal/model"

	"gorm.io/datatypes"
)

type WeaponMapper struct{}

func NewWeaponMapper() *WeaponMapper {
	return &WeaponMapper{}
}

func (m *WeaponMapper) ToEntity(w *model.Weapon) *entity.Weapon {
	if w == nil {
		return nil
	}
	return &entity.Weapon{
		Id:          w.Id,
		OwnerId:     w.OwnerId,
		Prompt:      w.Prompt,
		ModelUrl:    w.ModelUrl,
		ModelPath:   w.ModelPath,
		BugLevel:    w.BugLevel,
		PitchText:   w.PitchText,
		SaleSuccess: w.SaleSuccess,
		TripoTaskId: w.TripoTaskId,
		Metadata:    toRawMessage(w.Metadata),
		ShareId:     w.ShareId,
		CreatedAt:   w.CreatedAt,
		SharedAt:    w.SharedAt,
	}
}

func (m *WeaponMapper) ToModel(w *entity.Weapon) *model.Weapon {
	if w == nil {
		return nil
	}
	return &model.Weapon{
		Id:          w.Id,
		OwnerId:     w.OwnerId,
		Prompt:      w.Prompt,
		ModelUrl:    w.ModelUrl,
		ModelPath:   w.ModelPath,
		BugLevel:    w.BugLevel,
		PitchText:   w.PitchText,
		SaleSuccess: w.SaleSuccess,
		TripoTaskId: w.TripoTaskId,
		Metadata:    toJSON(w.Metadata),
		ShareId:     w.ShareId,
		CreatedAt:   w.CreatedAt,
		SharedAt:    w.SharedAt,
	}
}

func (m *WeaponMapper) ToSharedEntity(w *model.SharedWeapon) *entity.SharedWeapon {
	if w == nil {
		return nil
	}
	return &entity.SharedWeapon{
		Id:          w.Id,
		Prompt:      w.Prompt,
		ModelUrl:    w.ModelUrl,
		BugLevel:    w.BugLevel,
		PitchText:   w.PitchText,
		SaleSuccess: w.SaleSuccess,
		Metadata:    toRawMessage(w.Metadata),
		CreatedAt:   w.CreatedAt,
		SharedAt:    w.SharedAt,
	}
}

// NormalizeMetadata maps an absent or JSON null document to nil.
func NormalizeMetadata(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return raw
}

func toJSON(raw json.RawMessage) datatypes.JSON {
	raw = NormalizeMetadata(raw)
	if raw == nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func toRawMessage(doc datatypes.JSON) json.RawMessage {
	if len(doc) == 0 {
		return nil
	}
	return NormalizeMetadata(json.RawMessage(doc))
}
