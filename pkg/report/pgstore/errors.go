package pgstore

import "errors"

var (
	ErrFailedToParseConfig     = errors.New("failed to parse postgres connection string")
	ErrFailedToConnect         = errors.New("failed to connect to postgres")
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")
)
