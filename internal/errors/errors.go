package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/datefeatures/internal/calendar"
	"github.com/julianstephens/datefeatures/internal/keyring"
	"github.com/julianstephens/datefeatures/internal/logger"
	"github.com/julianstephens/datefeatures/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a fix for errors the user can act on, or returns "".
func Hint(err error) string {
	var parseErr *calendar.DateParseError
	switch {
	case errors.As(err, &parseErr):
		return "dates must be written as YYYY-MM-DD, for example 2024-01-31"
	case errors.Is(err, storage.ErrEmbeddedCredentials):
		return "store the full connection string with 'datefeatures keyring set' or use .pgpass / PGPASSWORD"
	case errors.Is(err, keyring.ErrNotFound):
		return "store a connection string with 'datefeatures keyring set'"
	}
	return ""
}

// Report writes the formatted error and any hint to w and returns the exit code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
	return 1
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		os.Exit(Report(os.Stderr, err))
	}
}
