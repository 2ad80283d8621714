package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/aura/internal/logger"
)

var (
	// ErrInvalidArgument is returned for input rejected at the boundary:
	// negative goals or values, empty habit names, unknown moods.
	ErrInvalidArgument = stderrors.New("invalid argument")
	// ErrRange is returned when a counter update would overflow int.
	ErrRange = stderrors.New("value out of range")
	// ErrNotFound is returned when a habit or mood id no longer exists.
	// Callers treat it as a no-op.
	ErrNotFound = stderrors.New("not found")
	// ErrCorruptData marks a persisted collection that could not be decoded.
	ErrCorruptData = stderrors.New("corrupt stored data")
)

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Rangef wraps ErrRange with a formatted message
func Rangef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRange, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

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

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
