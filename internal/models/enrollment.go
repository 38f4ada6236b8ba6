package models

import "time"

// Enrollment is one guardian-submitted application as stored in the
// inscripciones table. Rows are never updated once inserted.
type Enrollment struct {
	ID           int64     `db:"id" json:"id"`
	FirstNames   string    `db:"nombres" json:"nombres"`
	LastNames    string    `db:"apellidos" json:"apellidos"`
	BirthDate    string    `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	GradeLevel   string    `db:"grado" json:"grado"`
	SchoolYear   string    `db:"ano_escolar" json:"ano_escolar"`
	FatherName   string    `db:"padre_nombres" json:"padre_nombres"`
	MotherName   string    `db:"madre_nombres" json:"madre_nombres"`
	FatherPhone  string    `db:"padre_telefono" json:"padre_telefono"`
	MotherPhone  string    `db:"madre_telefono" json:"madre_telefono"`
	FatherEmail  string    `db:"email_padre" json:"email_padre"`
	MotherEmail  string    `db:"email_madre" json:"email_madre"`
	Address      string    `db:"direccion" json:"direccion"`
	Profession   string    `db:"profesion" json:"profesion"`
	RegisteredAt time.Time `db:"fecha_registro" json:"fecha_registro"`
}

// EnrollmentSummary is the reporting projection used by the recent list.
type EnrollmentSummary struct {
	ID           int64     `db:"id"`
	FirstNames   string    `db:"nombres"`
	LastNames    string    `db:"apellidos"`
	BirthDate    string    `db:"fecha_nacimiento"`
	GradeLevel   string    `db:"grado"`
	SchoolYear   string    `db:"ano_escolar"`
	FatherName   string    `db:"padre_nombres"`
	MotherName   string    `db:"madre_nombres"`
	FatherEmail  string    `db:"email_padre"`
	MotherEmail  string    `db:"email_madre"`
	RegisteredAt time.Time `db:"fecha_registro"`
}
