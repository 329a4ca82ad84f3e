package generator

import "fmt"

var (
	// ErrTemplateNotFound is returned when a generation request names a
	// template id that was never registered.
	ErrTemplateNotFound = fmt.Errorf("template not found")

	// ErrContentTooLong is returned when generated text exceeds the
	// template's max length. Content is never silently truncated.
	ErrContentTooLong = fmt.Errorf("content too long")

	// ErrMissingMetadata is returned when the engine produced no usable
	// performance estimate response.
	ErrMissingMetadata = fmt.Errorf("missing performance metadata")

	// ErrInvalidResponseFormat is returned when the engine response is empty
	// or otherwise unusable where content was expected.
	ErrInvalidResponseFormat = fmt.Errorf("invalid response format")
)
