package config

import "errors"

var (
	// ErrEmptyAddr is returned when the listen address is blank.
	ErrEmptyAddr = errors.New("addr must not be empty")

	// ErrUnknownBackend is returned for a db_backend other than badger or postgres.
	ErrUnknownBackend = errors.New("unknown db_backend")

	// ErrMissingDatabaseURL is returned when the postgres backend is selected
	// without a connection string.
	ErrMissingDatabaseURL = errors.New("database_url required for postgres backend")
)
