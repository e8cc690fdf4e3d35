package service

import (
	"context"
	"time"

	"verbatim/internal/logger"
	"verbatim/internal/models"
	"verbatim/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password, name string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ParseToken(accessToken string) (*TokenClaims, error)
	CurrentUser(ctx context.Context, accessToken string) (*models.User, error)
}

// Projects exposes CRUD over user-owned projects. Every operation is scoped
// to the calling owner; an ownership miss reads as ErrProjectNotFound.
type Projects interface {
	Create(ctx context.Context, ownerID, name, description string) (*models.Project, error)
	List(ctx context.Context, ownerID string) ([]models.Project, error)
	Get(ctx context.Context, ownerID, projectID string) (*models.Project, error)
	Update(ctx context.Context, ownerID, projectID string, patch ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, ownerID, projectID string) error
	Transcriptions(ctx context.Context, ownerID, projectID string) ([]models.Transcription, error)
}

// Media exposes the processing endpoints backed by a MediaProcessor.
type Media interface {
	Transcribe(ctx context.Context, user *models.User, in TranscribeInput) (*TranscribeResult, error)
	Translate(ctx context.Context, user *models.User, text, targetCode string) (string, error)
	Voiceover(ctx context.Context, user *models.User, in VoiceoverInput) (string, error)
}

// Activity exposes read access to the audit log for the live feed.
type Activity interface {
	Recent(ctx context.Context, email string, limit int) ([]models.ActivityEntry, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Projects
	Media
	Activity
}

// Config carries the tunables the services need beyond their repositories.
type Config struct {
	SigningKey string
	TokenTTL   time.Duration
	// Processor overrides the placeholder media backend; nil keeps it.
	Processor MediaProcessor
}

const (
	defaultTokenTTL        = 2 * time.Hour
	defaultProcessingDelay = 500 * time.Millisecond
)

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, log *logger.Logger) *Service {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	processor := cfg.Processor
	if processor == nil {
		processor = &PlaceholderProcessor{Delay: defaultProcessingDelay}
	}
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg.SigningKey, ttl),
		Projects:      NewProjectService(repos.Projects, repos.Transcriptions),
		Media:         NewMediaService(processor, repos.Projects, repos.Transcriptions, repos.Activity, log),
		Activity:      NewActivityService(repos.Activity),
	}
}
