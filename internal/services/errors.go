package services

import "errors"

// Dashboard service errors
var (
	// ErrSourceUnavailable reports that the project data file could not
	// be read as a table. It is the only externally visible load failure.
	ErrSourceUnavailable = errors.New("project data source unavailable")
)
