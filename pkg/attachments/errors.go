package attachments

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for attachment resolution and validation.
var (
	// Reference errors.
	ErrInvalidRef = errors.New("attachments: invalid file reference")
	ErrNotFound   = errors.New("attachments: file not found")

	// Fetch errors.
	ErrAccessDenied = errors.New("attachments: access denied")
	ErrFetchFailed  = errors.New("attachments: failed to fetch file")

	// Validation errors.
	ErrEmptyFile      = errors.New("attachments: file is empty")
	ErrTooManyFiles   = errors.New("attachments: too many files")
	ErrTooLarge       = errors.New("attachments: combined size exceeds limit")
	ErrDisallowedType = errors.New("attachments: file extension not allowed")
)

// wrapS3Error wraps S3 errors with appropriate sentinel errors.
// Note: Uses %v (not %w) for the original error to normalize error types -
// callers should use errors.Is() with sentinel errors, not errors.As() for
// AWS types.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
