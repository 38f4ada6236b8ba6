package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-enrollment-intake/internal/models"
)

// MaxRecentEnrollments caps ListRecent.
const MaxRecentEnrollments = 50

const (
	insertEnrollmentQuery = `INSERT INTO inscripciones
        (nombres, apellidos, fecha_nacimiento, grado, ano_escolar,
         padre_nombres, madre_nombres, padre_telefono, madre_telefono,
         email_padre, email_madre, direccion, profesion)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, fecha_registro`

	listRecentQuery = `SELECT id, nombres, apellidos, fecha_nacimiento, grado, ano_escolar,
        padre_nombres, madre_nombres, email_padre, email_madre, fecha_registro
        FROM inscripciones
        ORDER BY fecha_registro DESC, id DESC
        LIMIT $1`
)

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// EnrollmentRepository handles persistence of enrollment applications.
// Records are insert-only.
type EnrollmentRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewEnrollmentRepository constructs the repository. metrics may be nil.
func NewEnrollmentRepository(db *sqlx.DB, metrics queryObserver) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, metrics: metrics}
}

func (r *EnrollmentRepository) observe(label string, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

// Insert stores the enrollment in a single auto-committed statement and
// fills in the store-assigned ID and registration time.
func (r *EnrollmentRepository) Insert(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	defer r.observe("insert_enrollment", time.Now())

	row := r.db.QueryRowxContext(ctx, insertEnrollmentQuery,
		enrollment.FirstNames,
		enrollment.LastNames,
		enrollment.BirthDate,
		enrollment.GradeLevel,
		enrollment.SchoolYear,
		enrollment.FatherName,
		enrollment.MotherName,
		enrollment.FatherPhone,
		enrollment.MotherPhone,
		enrollment.FatherEmail,
		enrollment.MotherEmail,
		enrollment.Address,
		enrollment.Profession,
	)
	if err := row.Scan(&enrollment.ID, &enrollment.RegisteredAt); err != nil {
		return 0, fmt.Errorf("insert enrollment: %w", err)
	}
	return enrollment.ID, nil
}

// ListRecent returns the newest enrollments first. limit is clamped to
// 1..MaxRecentEnrollments.
func (r *EnrollmentRepository) ListRecent(ctx context.Context, limit int) ([]models.EnrollmentSummary, error) {
	defer r.observe("list_recent_enrollments", time.Now())

	if limit <= 0 || limit > MaxRecentEnrollments {
		limit = MaxRecentEnrollments
	}
	enrollments := []models.EnrollmentSummary{}
	if err := r.db.SelectContext(ctx, &enrollments, listRecentQuery, limit); err != nil {
		return nil, fmt.Errorf("list recent enrollments: %w", err)
	}
	return enrollments, nil
}

// Ping runs a trivial query to prove the database answers.
func (r *EnrollmentRepository) Ping(ctx context.Context) error {
	defer r.observe("ping", time.Now())

	var one int
	if err := r.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
