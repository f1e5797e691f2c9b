package xnat

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the subject, experiment, or scan does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAuth indicates the server rejected the supplied credentials.
	ErrAuth = errors.New("authentication failed")
	// ErrRemote tags transport and server-side failures.
	ErrRemote = errors.New("remote operation failed")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrRemote
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "repository failure"
	}
	return strings.Join(parts, ": ")
}

func statusError(operation string, status int) error {
	switch status {
	case 401, 403:
		return Wrap(ErrAuth, operation, fmt.Sprintf("server returned %d", status), nil)
	case 404:
		return Wrap(ErrNotFound, operation, fmt.Sprintf("server returned %d", status), nil)
	default:
		return Wrap(ErrRemote, operation, fmt.Sprintf("server returned %d", status), nil)
	}
}
