package contract

import (
	"context"
	"time"

	"weaponforge-be/internal/entity"
	"weaponforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WeaponRepository interface {
	Create(ctx context.Context, weapon *entity.Weapon) error
	// ShareIfAbsent sets share_id and shared_at in one conditional statement,
	// keeping any values already present. It reports whether a row matched id.
	ShareIfAbsent(ctx context.Context, id uuid.UUID, shareId uuid.UUID, sharedAt time.Time) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Weapon, error)
	FindShared(ctx context.Context, shareId uuid.UUID) (*entity.SharedWeapon, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
