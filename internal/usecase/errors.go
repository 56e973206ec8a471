package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors never reach the network; callers surface them as notices.
var (
	ErrEmptyValue      = errors.New("value is empty")
	ErrDuplicateValue  = errors.New("value already present")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidSection  = errors.New("operation not supported for section")
	ErrInvalidPicture  = errors.New("profile picture must be an image data URI")
	ErrNothingToExport = errors.New("add content to at least one section before exporting")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrReorderDisabled = errors.New("reorder mode is off")
	ErrSectionPinned   = errors.New("section cannot be moved")
	ErrPreviewMissing  = errors.New("preview root element missing from rendered document")
	ErrInvalidPDF      = errors.New("renderer produced an invalid PDF")
	ErrSaveInFlight    = errors.New("a save is already in progress")
	ErrExportInFlight  = errors.New("an export is already in progress")
	ErrStaleResponse   = errors.New("response superseded by a newer request")
	ErrSessionNotFound = errors.New("editing session not found")
	ErrUnauthenticated = errors.New("not authenticated")
)

// ValidationError reports required fields that are missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Missing, ", "))
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, target := range []error{ErrEmptyValue, ErrDuplicateValue, ErrUnknownField, ErrInvalidSection, ErrInvalidPicture, ErrNothingToExport, ErrUnknownTemplate} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
