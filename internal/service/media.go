package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"verbatim/internal/logger"
	"verbatim/internal/models"
	"verbatim/internal/repository"

	"github.com/google/uuid"
)

// MediaProcessor is the capability behind the processing endpoints. The
// default implementation returns placeholder payloads; a real backend slots
// in without touching the HTTP layer.
type MediaProcessor interface {
	Transcribe(ctx context.Context, fileName, languageCode string, audio []byte) (fullText, srtContent string, durationSec float64, err error)
	Translate(ctx context.Context, text, targetCode string) (string, error)
	Synthesize(ctx context.Context, text, voiceName, emotionPrompt string) ([]byte, error)
}

// PlaceholderProcessor stands in for the generative backend. Delay models
// processing latency; zero disables it.
type PlaceholderProcessor struct {
	Delay time.Duration
}

var _ MediaProcessor = (*PlaceholderProcessor)(nil)

// Rough PCM rate used to derive a fake duration from the upload size
// (16-bit mono at 16 kHz).
const placeholderBytesPerSec = 32000

func (p *PlaceholderProcessor) Transcribe(ctx context.Context, fileName, languageCode string, audio []byte) (string, string, float64, error) {
	if err := p.wait(ctx); err != nil {
		return "", "", 0, err
	}
	duration := float64(len(audio)) / placeholderBytesPerSec
	fullText := fmt.Sprintf("Placeholder transcription of %s in language %s. It lasted %.2f seconds.", fileName, languageCode, duration)
	srt := "1\n00:00:00,000 --> 00:00:05,000\nPlaceholder subtitle line 1\n\n2\n00:00:05,000 --> 00:00:10,000\nPlaceholder subtitle line 2"
	return fullText, srt, duration, nil
}

func (p *PlaceholderProcessor) Translate(ctx context.Context, text, targetCode string) (string, error) {
	if err := p.wait(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("Translated to %s: %s", targetCode, text), nil
}

func (p *PlaceholderProcessor) Synthesize(ctx context.Context, text, voiceName, emotionPrompt string) ([]byte, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return []byte("PLACEHOLDER_PCM_AUDIO"), nil
}

func (p *PlaceholderProcessor) wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.Delay):
		return nil
	}
}

// TranscribeInput is a received multipart audio upload. ProjectID is
// optional; when it names a project the caller owns, the result is stored.
type TranscribeInput struct {
	ProjectID    string
	FileName     string
	ContentType  string
	LanguageCode string
	Audio        []byte
}

type TranscribeResult struct {
	FullText   string `json:"full_text"`
	SRTContent string `json:"srt_content"`
}

type VoiceoverInput struct {
	Text          string
	VoiceName     string
	EmotionPrompt string
	IsPreview     bool
}

type MediaService struct {
	processor      MediaProcessor
	projects       repository.Projects
	transcriptions repository.Transcriptions
	activity       repository.Activity
	log            *logger.Logger
}

func NewMediaService(processor MediaProcessor, projects repository.Projects, transcriptions repository.Transcriptions, activity repository.Activity, log *logger.Logger) *MediaService {
	return &MediaService{
		processor:      processor,
		projects:       projects,
		transcriptions: transcriptions,
		activity:       activity,
		log:            log,
	}
}

// Transcribe runs the processor over an audio upload. Non-audio uploads are
// rejected before touching the processor.
func (s *MediaService) Transcribe(ctx context.Context, user *models.User, in TranscribeInput) (*TranscribeResult, error) {
	if !strings.HasPrefix(in.ContentType, "audio/") {
		return nil, ErrUnsupportedMedia
	}

	fullText, srt, duration, err := s.processor.Transcribe(ctx, in.FileName, in.LanguageCode, in.Audio)
	if err != nil {
		return nil, fmt.Errorf("transcribe %q: %w", in.FileName, err)
	}

	if in.ProjectID != "" {
		s.storeTranscription(ctx, user, in, fullText, srt, duration)
	}
	s.recordActivity(ctx, user.Email, models.ActionTranscription)

	return &TranscribeResult{FullText: fullText, SRTContent: srt}, nil
}

func (s *MediaService) Translate(ctx context.Context, user *models.User, text, targetCode string) (string, error) {
	translated, err := s.processor.Translate(ctx, text, targetCode)
	if err != nil {
		return "", fmt.Errorf("translate to %q: %w", targetCode, err)
	}
	s.recordActivity(ctx, user.Email, models.ActionTranslation)
	return translated, nil
}

func (s *MediaService) Voiceover(ctx context.Context, user *models.User, in VoiceoverInput) (string, error) {
	audio, err := s.processor.Synthesize(ctx, in.Text, in.VoiceName, in.EmotionPrompt)
	if err != nil {
		return "", fmt.Errorf("synthesize voice %q: %w", in.VoiceName, err)
	}
	s.recordActivity(ctx, user.Email, models.ActionVoiceover)
	return base64.StdEncoding.EncodeToString(audio), nil
}

// storeTranscription persists the result under the named project when the
// caller owns it. Best-effort: failures are logged, never surfaced.
func (s *MediaService) storeTranscription(ctx context.Context, user *models.User, in TranscribeInput, fullText, srt string, duration float64) {
	p, err := s.projects.GetOwned(ctx, in.ProjectID, user.ID)
	if err != nil || p == nil {
		if err != nil && s.log != nil {
			s.log.Errorw("transcription_project_lookup_failed", "err", err, "project_id", in.ProjectID)
		}
		return
	}
	t := &models.Transcription{
		ID:             uuid.NewString(),
		ProjectID:      p.ID,
		Language:       in.LanguageCode,
		FileName:       in.FileName,
		TranscriptText: fullText,
		SRTContent:     srt,
		DurationSec:    duration,
		Status:         "completed",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.transcriptions.Insert(ctx, t); err != nil && s.log != nil {
		s.log.Errorw("transcription_store_failed", "err", err, "project_id", p.ID)
	}
}

// recordActivity appends an audit row. The write is best-effort: an error is
// logged and never propagated to the caller.
func (s *MediaService) recordActivity(ctx context.Context, email, action string) {
	e := models.ActivityEntry{Email: email, Action: action, OccurredAt: time.Now().UTC()}
	if err := s.activity.Append(ctx, e); err != nil && s.log != nil {
		s.log.Errorw("activity_append_failed", "err", err, "email", email, "action", action)
	}
}

// ActivityService reads back the audit log for the live feed.
type ActivityService struct {
	activity repository.Activity
}

func NewActivityService(activity repository.Activity) *ActivityService {
	return &ActivityService{activity: activity}
}

func (s *ActivityService) Recent(ctx context.Context, email string, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.activity.ListRecent(ctx, email, limit)
}
