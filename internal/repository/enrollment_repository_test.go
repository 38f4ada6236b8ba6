package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-enrollment-intake/internal/models"
)

func newEnrollmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func TestEnrollmentRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewEnrollmentRepository(db, observer)

	registered := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO inscripciones").
		WithArgs("Ana", "Lopez", "2015-03-01", "3", "2025", "", "", "", "", "padre@x.com", "", "Calle 1", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_registro"}).AddRow(int64(7), registered))

	record := &models.Enrollment{
		FirstNames:  "Ana",
		LastNames:   "Lopez",
		BirthDate:   "2015-03-01",
		GradeLevel:  "3",
		SchoolYear:  "2025",
		FatherEmail: "padre@x.com",
		Address:     "Calle 1",
	}
	id, err := repo.Insert(context.Background(), record)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, registered, record.RegisteredAt)
	assert.Equal(t, []string{"insert_enrollment"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryInsertFailure(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db, nil)

	mock.ExpectQuery("INSERT INTO inscripciones").WillReturnError(errors.New("connection refused"))

	_, err := repo.Insert(context.Background(), &models.Enrollment{FirstNames: "Ana"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert enrollment")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListRecent(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db, nil)

	columns := []string{"id", "nombres", "apellidos", "fecha_nacimiento", "grado", "ano_escolar", "padre_nombres", "madre_nombres", "email_padre", "email_madre", "fecha_registro"}
	rows := sqlmock.NewRows(columns).
		AddRow(int64(2), "Luis", "Diaz", "2014-07-20", "4", "2025", "", "Rosa", "", "rosa@x.com", time.Date(2025, 1, 11, 8, 0, 0, 0, time.UTC)).
		AddRow(int64(1), "Ana", "Lopez", "2015-03-01", "3", "2025", "Juan", "", "padre@x.com", "", time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY fecha_registro DESC, id DESC\n        LIMIT $1")).
		WithArgs(MaxRecentEnrollments).
		WillReturnRows(rows)

	list, err := repo.ListRecent(context.Background(), 500)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, "rosa@x.com", list[0].MotherEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListRecentEmpty(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db, nil)

	mock.ExpectQuery("FROM inscripciones").WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	list, err := repo.ListRecent(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEnrollmentRepositoryPing(t *testing.T) {
	db, mock, cleanup := newEnrollmentRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	require.NoError(t, repo.Ping(context.Background()))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).WillReturnError(errors.New("down"))
	assert.Error(t, repo.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
