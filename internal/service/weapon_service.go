package service

import (
	"context"
	"time"

	"weaponforge-be/internal/dto"
	"weaponforge-be/internal/entity"
	"weaponforge-be/internal/mapper"
	"weaponforge-be/internal/pkg/apperror"
	"weaponforge-be/internal/pkg/contentpolicy"
	"weaponforge-be/internal/pkg/logger"
	"weaponforge-be/internal/repository/contract"
	"weaponforge-be/internal/repository/specification"

	"github.com/google/uuid"
)

const weaponModule = "WEAPON"

type IWeaponService interface {
	Create(ctx context.Context, req *dto.CreateWeaponRequest) (*dto.WeaponResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.WeaponResponse, error)
	Share(ctx context.Context, id uuid.UUID) (*dto.WeaponResponse, error)
	ShowShared(ctx context.Context, shareId uuid.UUID) (*dto.SharedWeaponResponse, error)
}

type weaponService struct {
	repo   contract.WeaponRepository
	events IEventPublisher
	logger logger.ILogger
	now    func() time.Time
}

func NewWeaponService(repo contract.WeaponRepository, events IEventPublisher, log logger.ILogger) IWeaponService {
	return &weaponService{
		repo:   repo,
		events: events,
		logger: log,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *weaponService) Create(ctx context.Context, req *dto.CreateWeaponRequest) (*dto.WeaponResponse, error) {
	prompt, err := contentpolicy.NormalizeWeaponPrompt(req.Prompt)
	if err != nil {
		return nil, err
	}

	now := s.now()
	weapon := entity.Weapon{
		Id:          uuid.New(),
		OwnerId:     req.OwnerId,
		Prompt:      prompt,
		ModelUrl:    req.ModelUrl,
		ModelPath:   req.ModelPath,
		BugLevel:    req.BugLevel,
		PitchText:   req.PitchText,
		SaleSuccess: req.SaleSuccess,
		TripoTaskId: req.TripoTaskId,
		Metadata:    mapper.NormalizeMetadata(req.Metadata),
		CreatedAt:   now,
	}
	if req.Share != nil && *req.Share {
		shareId := uuid.New()
		weapon.ShareId = &shareId
		weapon.SharedAt = &now
	}

	if err := s.repo.Create(ctx, &weapon); err != nil {
		s.logger.Error(weaponModule, "Failed to create weapon", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Store(err)
	}

	s.logger.Info(weaponModule, "Weapon created", map[string]interface{}{
		"weapon_id": weapon.Id.String(),
		"shared":    weapon.IsShared(),
	})
	s.events.PublishWeaponCreated(ctx, &weapon)

	return toWeaponResponse(&weapon), nil
}

func (s *weaponService) Show(ctx context.Context, id uuid.UUID) (*dto.WeaponResponse, error) {
	weapon, err := s.repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Store(err)
	}
	if weapon == nil {
		return nil, apperror.NotFound("weapon not found")
	}
	return toWeaponResponse(weapon), nil
}

func (s *weaponService) Share(ctx context.Context, id uuid.UUID) (*dto.WeaponResponse, error) {
	candidate := uuid.New()

	matched, err := s.repo.ShareIfAbsent(ctx, id, candidate, s.now())
	if err != nil {
		s.logger.Error(weaponModule, "Failed to share weapon", map[string]interface{}{"weapon_id": id.String(), "error": err.Error()})
		return nil, apperror.Store(err)
	}
	if !matched {
		return nil, apperror.NotFound("weapon not found")
	}

	weapon, err := s.repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Store(err)
	}
	if weapon == nil {
		return nil, apperror.NotFound("weapon not found")
	}

	// Only the caller whose candidate was persisted announces the share.
	if weapon.ShareId != nil && *weapon.ShareId == candidate {
		s.logger.Info(weaponModule, "Weapon shared", map[string]interface{}{
			"weapon_id": weapon.Id.String(),
			"share_id":  candidate.String(),
		})
		s.events.PublishWeaponShared(ctx, weapon)
	}

	return toWeaponResponse(weapon), nil
}

func (s *weaponService) ShowShared(ctx context.Context, shareId uuid.UUID) (*dto.SharedWeaponResponse, error) {
	shared, err := s.repo.FindShared(ctx, shareId)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if shared == nil {
		return nil, apperror.NotFound("share not found")
	}

	return &dto.SharedWeaponResponse{
		Id:          shared.Id,
		Prompt:      shared.Prompt,
		ModelUrl:    shared.ModelUrl,
		BugLevel:    shared.BugLevel,
		PitchText:   shared.PitchText,
		SaleSuccess: shared.SaleSuccess,
		Metadata:    shared.Metadata,
		CreatedAt:   shared.CreatedAt,
		SharedAt:    shared.SharedAt,
	}, nil
}

func toWeaponResponse(w *entity.Weapon) *dto.WeaponResponse {
	return &dto.WeaponResponse{
		Id:          w.Id,
		OwnerId:     w.OwnerId,
		Prompt:      w.Prompt,
		ModelUrl:    w.ModelUrl,
		ModelPath:   w.ModelPath,
		BugLevel:    w.BugLevel,
		PitchText:   w.PitchText,
		SaleSuccess: w.SaleSuccess,
		TripoTaskId: w.TripoTaskId,
		Metadata:    w.Metadata,
		ShareId:     w.ShareId,
		CreatedAt:   w.CreatedAt,
		SharedAt:    w.SharedAt,
	}
}
