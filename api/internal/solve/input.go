package solve

import (
	"fmt"
	"io"
	"strings"

	"brainy-ai/api/internal/util"
)

// Collect validates one submission. Presence of both inputs is checked
// before the image is read; no bytes are read for incomplete submissions.
func Collect(promptText string, image *Upload) (UserRequest, error) {
	hasPrompt := strings.TrimSpace(promptText) != ""
	hasImage := image != nil

	switch {
	case hasImage && !hasPrompt:
		return UserRequest{}, ErrMissingPrompt
	case hasPrompt && !hasImage:
		return UserRequest{}, ErrMissingImage
	case !hasPrompt && !hasImage:
		return UserRequest{}, ErrMissingBoth
	}

	if image.Body == nil {
		return UserRequest{}, ErrUnreadableImage
	}
	data, err := io.ReadAll(image.Body)
	if err != nil {
		return UserRequest{}, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if len(data) == 0 {
		return UserRequest{}, ErrUnreadableImage
	}

	mime := util.PickMIME(image.MIMEType, "", data)
	if mime != "image/jpeg" && mime != "image/png" {
		return UserRequest{}, fmt.Errorf("%w: %q", ErrUnsupportedImage, mime)
	}

	return UserRequest{
		PromptText:    promptText,
		Image:         data,
		ImageMIMEType: mime,
	}, nil
}
