package service

import (
	"context"

	"weaponforge-be/internal/dto"
	"weaponforge-be/internal/pkg/apperror"
	"weaponforge-be/internal/pkg/contentpolicy"
	"weaponforge-be/internal/pkg/logger"
	"weaponforge-be/pkg/tripo"
)

const tripoModule = "TRIPO"

type ITripoService interface {
	CreateTask(ctx context.Context, req *dto.CreateTripoTaskRequest) (*dto.RelayedResponse, error)
	GetTask(ctx context.Context, taskId string) (*dto.RelayedResponse, error)
}

// TripoClient is the subset of the upstream client the proxy needs.
type TripoClient interface {
	CreateTask(ctx context.Context, task tripo.TaskRequest) (*tripo.Response, error)
	GetTask(ctx context.Context, taskID string) (*tripo.Response, error)
}

type tripoService struct {
	client TripoClient
	logger logger.ILogger
}

func NewTripoService(client TripoClient, log logger.ILogger) ITripoService {
	return &tripoService{
		client: client,
		logger: log,
	}
}

func (s *tripoService) CreateTask(ctx context.Context, req *dto.CreateTripoTaskRequest) (*dto.RelayedResponse, error) {
	if err := contentpolicy.CheckTaskPrompt(req.Prompt); err != nil {
		return nil, err
	}

	task := tripo.TaskRequest{
		Type:         tripo.TaskTypeTextToModel,
		Prompt:       req.Prompt,
		ModelVersion: tripo.DefaultModelVersion,
		Quality:      tripo.DefaultQuality,
	}
	if req.ModelVersion != nil {
		task.ModelVersion = *req.ModelVersion
	}
	if req.Quality != nil {
		task.Quality = *req.Quality
	}

	resp, err := s.client.CreateTask(ctx, task)
	if err != nil {
		s.logger.Error(tripoModule, "Upstream task creation failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Upstream(err)
	}

	s.logger.Info(tripoModule, "Task creation relayed", map[string]interface{}{"status": resp.StatusCode})
	return toRelayedResponse(resp), nil
}

func (s *tripoService) GetTask(ctx context.Context, taskId string) (*dto.RelayedResponse, error) {
	resp, err := s.client.GetTask(ctx, taskId)
	if err != nil {
		s.logger.Error(tripoModule, "Upstream task lookup failed", map[string]interface{}{"task_id": taskId, "error": err.Error()})
		return nil, apperror.Upstream(err)
	}
	return toRelayedResponse(resp), nil
}

func toRelayedResponse(resp *tripo.Response) *dto.RelayedResponse {
	return &dto.RelayedResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Body:        resp.Body,
	}
}
