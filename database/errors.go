package database

import "errors"

// Every error returned by the note store wraps one of these
var (
	ErrOpen                = errors.New("database could not be opened")
	ErrConstraint          = errors.New("write rejected by database")
	ErrNotFound            = errors.New("note not found")
	ErrSchemaInconsistency = errors.New("row does not match note schema")
)
