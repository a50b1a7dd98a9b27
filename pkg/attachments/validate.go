package attachments

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/blastengine/pkg/mailer"
)

// Limits the delivery API enforces on attachments. Checked locally so an
// invalid set never causes a remote call.
const (
	// MaxCount is the maximum number of attachments per message.
	MaxCount = 10

	// MaxTotalBytes caps the combined size of all attachments.
	MaxTotalBytes = 1_000_000
)

// disallowedExtensions are rejected by the delivery service regardless of
// size or content.
var disallowedExtensions = map[string]struct{}{
	".exe": {},
	".bat": {},
	".js":  {},
	".vbs": {},
	".zip": {},
	".gz":  {},
	".dll": {},
	".scr": {},
}

// Validate checks a resolved attachment set against count, extension, and
// combined-size limits.
func Validate(files []mailer.Attachment) error {
	if len(files) > MaxCount {
		return fmt.Errorf("%w: %d files, maximum %d", ErrTooManyFiles, len(files), MaxCount)
	}

	var total int64
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if _, blocked := disallowedExtensions[ext]; blocked {
			return fmt.Errorf("%w: %s", ErrDisallowedType, ext)
		}
		total += int64(len(f.Content))
	}

	if total > MaxTotalBytes {
		return fmt.Errorf("%w: %d bytes, maximum %d", ErrTooLarge, total, MaxTotalBytes)
	}
	return nil
}
