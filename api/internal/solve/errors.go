package solve

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPrompt    = errors.New("prompt is empty")
	ErrMissingImage     = errors.New("image is absent")
	ErrMissingBoth      = errors.New("image and prompt are absent")
	ErrUnreadableImage  = errors.New("image cannot be read")
	ErrUnsupportedImage = errors.New("image type is not supported")
	ErrSafetyBlocked    = errors.New("response blocked due to safety concerns")
	ErrEmptyResponse    = errors.New("response does not contain a valid part")
)

// ExternalServiceError wraps a transport or provider failure unchanged.
type ExternalServiceError struct {
	Provider string
	Status   int // HTTP status when the provider reported one, else 0
	Err      error
}

func (e *ExternalServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// IsValidation reports whether err was produced before any model call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingPrompt) ||
		errors.Is(err, ErrMissingImage) ||
		errors.Is(err, ErrMissingBoth) ||
		errors.Is(err, ErrUnreadableImage) ||
		errors.Is(err, ErrUnsupportedImage)
}

// Kind returns a short machine-readable name for err.
func Kind(err error) string {
	var ext *ExternalServiceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingPrompt):
		return "missing_prompt"
	case errors.Is(err, ErrMissingImage):
		return "missing_image"
	case errors.Is(err, ErrMissingBoth):
		return "missing_both"
	case errors.Is(err, ErrUnreadableImage):
		return "unreadable_image"
	case errors.Is(err, ErrUnsupportedImage):
		return "unsupported_image"
	case errors.Is(err, ErrSafetyBlocked):
		return "safety_blocked"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.As(err, &ext):
		return "external_service"
	default:
		return "internal"
	}
}

// UserMessage renders err for display. "try different input" and "try again"
// must stay distinct for blocked and empty responses.
func UserMessage(err error) string {
	switch Kind(err) {
	case "":
		return ""
	case "missing_prompt":
		return "Please enter your prompt details before asking for solutions."
	case "missing_image":
		return "Please upload an image of your document before asking for solutions."
	case "missing_both":
		return "Please upload an image of your document and enter your prompt details."
	case "unreadable_image":
		return "Can't read uploaded image."
	case "unsupported_image":
		return "Only JPG and PNG images are supported."
	case "safety_blocked":
		return "The response was blocked due to safety concerns. Please try again with different input."
	case "empty_response":
		return "The response does not contain a valid part. Please try again."
	case "external_service":
		return "The model service is unavailable right now. Please try again later."
	default:
		return "Something went wrong. Please try again."
	}
}
