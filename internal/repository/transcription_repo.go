package repository

import (
	"context"
	"database/sql"
	"fmt"

	"verbatim/internal/models"
)

type TranscriptionRepository struct {
	db   *sql.DB
	bind Binder
}

func NewTranscriptionRepository(db *sql.DB, bind Binder) *TranscriptionRepository {
	return &TranscriptionRepository{db: db, bind: bind}
}

var _ Transcriptions = (*TranscriptionRepository)(nil)

const (
	insertTranscriptionSQL = `INSERT INTO transcriptions (id, project_id, language, file_name, transcript_text, srt_content, duration, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectTranscriptionsByProjectSQL = `SELECT id, project_id, language, file_name, transcript_text, srt_content, duration, status, created_at FROM transcriptions WHERE project_id = ? ORDER BY created_at DESC`
)

func (r *TranscriptionRepository) Insert(ctx context.Context, t *models.Transcription) error {
	_, err := r.db.ExecContext(ctx, r.bind(insertTranscriptionSQL),
		t.ID, t.ProjectID, t.Language, t.FileName, t.TranscriptText, t.SRTContent, t.DurationSec, t.Status, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transcription %q: %w", t.ID, err)
	}
	return nil
}

// ListByProject returns a project's transcriptions, newest first.
func (r *TranscriptionRepository) ListByProject(ctx context.Context, projectID string) ([]models.Transcription, error) {
	rows, err := r.db.QueryContext(ctx, r.bind(selectTranscriptionsByProjectSQL), projectID)
	if err != nil {
		return nil, fmt.Errorf("select transcriptions for project %q: %w", projectID, err)
	}
	defer func() { _ = rows.Close() }()

	list := make([]models.Transcription, 0)
	for rows.Next() {
		var (
			t        models.Transcription
			fileName sql.NullString
			text     sql.NullString
			srt      sql.NullString
			duration sql.NullFloat64
		)
		err := rows.Scan(&t.ID, &t.ProjectID, &t.Language, &fileName, &text, &srt, &duration, &t.Status, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transcription row: %w", err)
		}
		t.FileName = fileName.String
		t.TranscriptText = text.String
		t.SRTContent = srt.String
		t.DurationSec = duration.Float64
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcription rows: %w", err)
	}
	return list, nil
}
