package implementation

import (
	"context"
	"errors"
	"time"

	"weaponforge-be/internal/entity"
	"weaponforge-be/internal/mapper"
	"weaponforge-be/internal/model"
	"weaponforge-be/internal/repository/contract"
	"weaponforge-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeaponRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WeaponMapper
}

func NewWeaponRepository(db *gorm.DB) contract.WeaponRepository {
	return &WeaponRepositoryImpl{
		db:     db,
		mapper: mapper.NewWeaponMapper(),
	}
}

func (r *WeaponRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WeaponRepositoryImpl) Create(ctx context.Context, weapon *entity.Weapon) error {
	m := r.mapper.ToModel(weapon)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*weapon = *r.mapper.ToEntity(m)
	return nil
}

func (r *WeaponRepositoryImpl) ShareIfAbsent(ctx context.Context, id uuid.UUID, shareId uuid.UUID, sharedAt time.Time) (bool, error) {
	// COALESCE keeps the first assignment; concurrent callers serialize on the row lock.
	result := r.db.WithContext(ctx).
		Model(&model.Weapon{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"share_id":  gorm.Expr("COALESCE(share_id, ?)", shareId),
			"shared_at": gorm.Expr("COALESCE(shared_at, ?)", sharedAt),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *WeaponRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Weapon, error) {
	var m model.Weapon
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WeaponRepositoryImpl) FindShared(ctx context.Context, shareId uuid.UUID) (*entity.SharedWeapon, error) {
	var m model.SharedWeapon
	query := r.db.WithContext(ctx).
		Select(model.SharedWeaponColumns).
		Scopes(specification.ByShareID{ShareID: shareId}.Apply)
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToSharedEntity(&m), nil
}

func (r *WeaponRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Weapon{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
