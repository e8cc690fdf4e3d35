package service

import (
	"context"
	"time"

	"verbatim/internal/models"
	"verbatim/internal/repository"

	"github.com/google/uuid"
)

// ProjectPatch carries the optional fields of a partial update.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
}

func (p ProjectPatch) isEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil
}

type ProjectService struct {
	projects       repository.Projects
	transcriptions repository.Transcriptions
}

func NewProjectService(projects repository.Projects, transcriptions repository.Transcriptions) *ProjectService {
	return &ProjectService{projects: projects, transcriptions: transcriptions}
}

func (s *ProjectService) Create(ctx context.Context, ownerID, name, description string) (*models.Project, error) {
	now := time.Now().UTC()
	p := &models.Project{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        name,
		Description: description,
		Status:      models.ProjectStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

func (s *ProjectService) Get(ctx context.Context, ownerID, projectID string) (*models.Project, error) {
	p, err := s.projects.GetOwned(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

// Update applies a partial update. An empty patch returns the current row.
func (s *ProjectService) Update(ctx context.Context, ownerID, projectID string, patch ProjectPatch) (*models.Project, error) {
	if patch.isEmpty() {
		return s.Get(ctx, ownerID, projectID)
	}
	p, err := s.projects.UpdateOwned(ctx, projectID, ownerID, repository.ProjectPatch{
		Name:        patch.Name,
		Description: patch.Description,
		Status:      patch.Status,
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID string) error {
	deleted, err := s.projects.DeleteOwned(ctx, projectID, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProjectNotFound
	}
	return nil
}

// Transcriptions lists a project's stored transcriptions after an ownership
// check; a foreign project reads as not found.
func (s *ProjectService) Transcriptions(ctx context.Context, ownerID, projectID string) ([]models.Transcription, error) {
	if _, err := s.Get(ctx, ownerID, projectID); err != nil {
		return nil, err
	}
	return s.transcriptions.ListByProject(ctx, projectID)
}
