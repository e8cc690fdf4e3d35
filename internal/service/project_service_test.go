package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"verbatim/internal/models"
	"verbatim/internal/repository"
)

// mockProjectsRepo is an in-test mock for repository.Projects.
type mockProjectsRepo struct {
	InsertFn      func(p *models.Project) error
	ListByOwnerFn func(ownerID string) ([]models.Project, error)
	GetOwnedFn    func(id, ownerID string) (*models.Project, error)
	UpdateOwnedFn func(id, ownerID string, patch repository.ProjectPatch) (*models.Project, error)
	DeleteOwnedFn func(id, ownerID string) (bool, error)
}

func (m *mockProjectsRepo) Insert(ctx context.Context, p *models.Project) error {
	if m.InsertFn != nil {
		return m.InsertFn(p)
	}
	return nil
}

func (m *mockProjectsRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	return m.ListByOwnerFn(ownerID)
}

func (m *mockProjectsRepo) GetOwned(ctx context.Context, id, ownerID string) (*models.Project, error) {
	return m.GetOwnedFn(id, ownerID)
}

func (m *mockProjectsRepo) UpdateOwned(ctx context.Context, id, ownerID string, patch repository.ProjectPatch) (*models.Project, error) {
	return m.UpdateOwnedFn(id, ownerID, patch)
}

func (m *mockProjectsRepo) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	return m.DeleteOwnedFn(id, ownerID)
}

type mockTranscriptionsRepo struct {
	InsertFn        func(tr *models.Transcription) error
	ListByProjectFn func(projectID string) ([]models.Transcription, error)

	inserted []*models.Transcription
}

func (m *mockTranscriptionsRepo) Insert(ctx context.Context, tr *models.Transcription) error {
	m.inserted = append(m.inserted, tr)
	if m.InsertFn != nil {
		return m.InsertFn(tr)
	}
	return nil
}

func (m *mockTranscriptionsRepo) ListByProject(ctx context.Context, projectID string) ([]models.Transcription, error) {
	if m.ListByProjectFn != nil {
		return m.ListByProjectFn(projectID)
	}
	return nil, nil
}

func TestProjectService_Create_Defaults(t *testing.T) {
	var inserted *models.Project
	repo := &mockProjectsRepo{
		InsertFn: func(p *models.Project) error {
			inserted = p
			return nil
		},
	}
	svc := NewProjectService(repo, &mockTranscriptionsRepo{})

	p, err := svc.Create(context.Background(), "u-1", "P1", "desc")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inserted == nil || inserted != p {
		t.Fatalf("insert not called with returned project")
	}
	if p.ID == "" {
		t.Errorf("expected generated id")
	}
	if p.UserID != "u-1" || p.Name != "P1" || p.Description != "desc" {
		t.Errorf("unexpected project fields: %+v", p)
	}
	if p.Status != models.ProjectStatusActive {
		t.Errorf("expected active status, got %q", p.Status)
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("expected matching creation timestamps, got %v / %v", p.CreatedAt, p.UpdatedAt)
	}
}

func TestProjectService_Get_MissReadsAsNotFound(t *testing.T) {
	repo := &mockProjectsRepo{
		GetOwnedFn: func(id, ownerID string) (*models.Project, error) { return nil, nil },
	}
	svc := NewProjectService(repo, &mockTranscriptionsRepo{})

	_, err := svc.Get(context.Background(), "u-1", "someone-elses")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Update_EmptyPatchReturnsCurrent(t *testing.T) {
	current := &models.Project{ID: "p-1", UserID: "u-1", Name: "P1", Status: models.ProjectStatusActive}
	repo := &mockProjectsRepo{
		GetOwnedFn: func(id, ownerID string) (*models.Project, error) { return current, nil },
		UpdateOwnedFn: func(id, ownerID string, patch repository.ProjectPatch) (*models.Project, error) {
			t.Fatal("UpdateOwned should not run for an empty patch")
			return nil, nil
		},
	}
	svc := NewProjectService(repo, &mockTranscriptionsRepo{})

	p, err := svc.Update(context.Background(), "u-1", "p-1", ProjectPatch{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if p != current {
		t.Fatalf("expected current row back, got %+v", p)
	}
}

func TestProjectService_Update_Miss(t *testing.T) {
	repo := &mockProjectsRepo{
		UpdateOwnedFn: func(id, ownerID string, patch repository.ProjectPatch) (*models.Project, error) {
			return nil, nil
		},
	}
	svc := NewProjectService(repo, &mockTranscriptionsRepo{})

	status := models.ProjectStatusArchived
	_, err := svc.Update(context.Background(), "u-1", "p-404", ProjectPatch{Status: &status})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Delete_Miss(t *testing.T) {
	repo := &mockProjectsRepo{
		DeleteOwnedFn: func(id, ownerID string) (bool, error) { return false, nil },
	}
	svc := NewProjectService(repo, &mockTranscriptionsRepo{})

	err := svc.Delete(context.Background(), "u-1", "p-404")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Transcriptions_RequiresOwnership(t *testing.T) {
	repo := &mockProjectsRepo{
		GetOwnedFn: func(id, ownerID string) (*models.Project, error) { return nil, nil },
	}
	transcriptions := &mockTranscriptionsRepo{
		ListByProjectFn: func(projectID string) ([]models.Transcription, error) {
			t.Fatal("ListByProject should not run for an unowned project")
			return nil, nil
		},
	}
	svc := NewProjectService(repo, transcriptions)

	_, err := svc.Transcriptions(context.Background(), "u-1", "p-foreign")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Transcriptions_Lists(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockProjectsRepo{
		GetOwnedFn: func(id, ownerID string) (*models.Project, error) {
			return &models.Project{ID: id, UserID: ownerID}, nil
		},
	}
	transcriptions := &mockTranscriptionsRepo{
		ListByProjectFn: func(projectID string) ([]models.Transcription, error) {
			return []models.Transcription{{ID: "t-1", ProjectID: projectID, CreatedAt: now}}, nil
		},
	}
	svc := NewProjectService(repo, transcriptions)

	list, err := svc.Transcriptions(context.Background(), "u-1", "p-1")
	if err != nil {
		t.Fatalf("Transcriptions failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "t-1" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
