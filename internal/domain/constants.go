package domain

import "time"

// File permission constants.
const (
	// DirectoryPermissions is the default permission for directories.
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files.
	SecureFilePermissions = 0o600
)

// Execution defaults.
const (
	// DefaultCommandTimeout bounds a child process when the config does not
	// say otherwise.
	DefaultCommandTimeout = 30 * time.Second
	// DefaultShell is used when $SHELL is unset and no shell is configured.
	DefaultShell = "/bin/sh"
)

// History defaults.
const (
	// DefaultHistoryLimit is the default number of history records to display.
	DefaultHistoryLimit = 20
)
