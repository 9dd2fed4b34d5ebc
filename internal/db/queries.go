package db

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/dkeller9/contactlens/internal/contact"
	"github.com/dkeller9/contactlens/internal/errors"
)

const contactColumns = "id, name, phone, category, email, notes, created_at, updated_at"

// FetchContacts returns every contact row ordered newest first.
// This is the record source boundary for the pipeline: rows are read once
// and never written back.
func FetchContacts(ctx context.Context, database *sql.DB) ([]contact.Record, error) {
	query := "SELECT " + contactColumns + " FROM contacts ORDER BY created_at DESC"

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewSourceUnavailable(err)
	}
	defer rows.Close()

	records := []contact.Record{}
	for rows.Next() {
		rec, err := scanContact(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewSourceUnavailable(err)
	}

	return records, nil
}

// ListContacts returns a page of contacts ordered newest first, plus the
// total row count for pagination.
func ListContacts(ctx context.Context, database *sql.DB, limit, offset int) ([]contact.Record, int, error) {
	var total int
	if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&total); err != nil {
		return nil, 0, errors.NewSourceUnavailable(err)
	}

	query := "SELECT " + contactColumns + " FROM contacts ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := database.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewSourceUnavailable(err)
	}
	defer rows.Close()

	records := []contact.Record{}
	for rows.Next() {
		rec, err := scanContact(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewSourceUnavailable(err)
	}

	return records, total, nil
}

// GetContactByID retrieves a single contact row.
func GetContactByID(ctx context.Context, database *sql.DB, id int64) (*contact.Record, error) {
	query := "SELECT " + contactColumns + " FROM contacts WHERE id = ?"
	row := database.QueryRowContext(ctx, query, id)

	rec, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(formatID(id))
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return rec, nil
}

// CountContacts returns the number of contact rows.
func CountContacts(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&n); err != nil {
		return 0, errors.NewSourceUnavailable(err)
	}
	return n, nil
}

// NewContact holds the column values for an insert. Nullable columns are
// pointers; nil inserts SQL NULL.
type NewContact struct {
	Name      string
	Phone     string
	Category  *string
	Email     *string
	Notes     *string
	CreatedAt *string
	UpdatedAt *string
}

// InsertContact inserts a row and returns its assigned id.
// Used by the CSV import command; the analysis pipeline itself never writes.
func InsertContact(ctx context.Context, database *sql.DB, c NewContact) (int64, error) {
	query := `
		INSERT INTO contacts (name, phone, category, email, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := database.ExecContext(ctx, query,
		c.Name, c.Phone,
		toNullString(c.Category), toNullString(c.Email), toNullString(c.Notes),
		toNullString(c.CreatedAt), toNullString(c.UpdatedAt),
	)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return id, nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanContact scans a contact row. Timestamp columns are read as raw
// strings and parsed leniently; a malformed value yields a nil timestamp,
// never a scan error.
func scanContact(s scanner) (*contact.Record, error) {
	var (
		rec       contact.Record
		category  sql.NullString
		email     sql.NullString
		notes     sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)

	err := s.Scan(&rec.ID, &rec.Name, &rec.Phone, &category, &email, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.Category = fromNullString(category)
	rec.Email = fromNullString(email)
	rec.Notes = fromNullString(notes)
	if createdAt.Valid {
		rec.CreatedAt = contact.ParseTimestamp(createdAt.String)
	}
	if updatedAt.Valid {
		rec.UpdatedAt = contact.ParseTimestamp(updatedAt.String)
	}

	return &rec, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
