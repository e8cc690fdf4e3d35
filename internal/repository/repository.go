package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"verbatim/internal/models"
	"verbatim/internal/repository/db"
)

// Users stores account records. Lookups return (nil, nil) when no row matches.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ProjectPatch carries the optional fields of a partial project update.
// Nil means "leave unchanged".
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
}

// Projects stores project rows. Every read and write is scoped to the owning
// user, so a row owned by someone else behaves exactly like a missing row.
type Projects interface {
	Insert(ctx context.Context, p *models.Project) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error)
	GetOwned(ctx context.Context, id, ownerID string) (*models.Project, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch ProjectPatch) (*models.Project, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
}

// Transcriptions stores transcription results attached to projects.
type Transcriptions interface {
	Insert(ctx context.Context, t *models.Transcription) error
	ListByProject(ctx context.Context, projectID string) ([]models.Transcription, error)
}

// Activity is the append-mostly audit log of media-processing calls.
type Activity interface {
	Append(ctx context.Context, e models.ActivityEntry) error
	ListRecent(ctx context.Context, email string, limit int) ([]models.ActivityEntry, error)
}

type Repository struct {
	Users          Users
	Projects       Projects
	Transcriptions Transcriptions
	Activity       Activity
}

// NewRepository wires all SQL repositories over a shared connection pool.
// The driver name selects the placeholder syntax of the target store.
func NewRepository(conn *sql.DB, driver string) *Repository {
	bind := binderFor(driver)
	return &Repository{
		Users:          NewUserRepository(conn, bind),
		Projects:       NewProjectRepository(conn, bind),
		Transcriptions: NewTranscriptionRepository(conn, bind),
		Activity:       NewActivityRepository(conn, bind),
	}
}

// Binder rewrites query placeholders for the active driver. Queries are
// written with sqlite-style "?" and rebound to "$n" for postgres.
type Binder func(query string) string

func passthroughBinder(query string) string { return query }

func postgresBinder(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func binderFor(driver string) Binder {
	if driver == db.DriverPostgres {
		return postgresBinder
	}
	return passthroughBinder
}
