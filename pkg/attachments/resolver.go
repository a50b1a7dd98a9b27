package attachments

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/blastengine/pkg/mailer"
)

// Resolver turns a host-supplied file reference into an in-memory
// attachment.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (mailer.Attachment, error)
}

// Config holds resolver configuration. S3 settings are only required when
// s3:// references are in play.
type Config struct {
	S3 S3Config
}

// NewResolver builds the default resolver: s3:// references go to S3,
// everything else is read from the local filesystem.
func NewResolver(cfg Config) Resolver {
	return &schemeResolver{
		local: Local{},
		s3:    newS3Lazy(cfg.S3),
	}
}

// schemeResolver dispatches on the reference scheme.
type schemeResolver struct {
	local Local
	s3    *s3Lazy
}

func (r *schemeResolver) Resolve(ctx context.Context, ref string) (mailer.Attachment, error) {
	if strings.HasPrefix(ref, s3Scheme) {
		return r.s3.Resolve(ctx, ref)
	}
	return r.local.Resolve(ctx, ref)
}

// Local resolves plain filesystem paths.
type Local struct{}

// Resolve reads the referenced file. The handle is opened and closed within
// this call regardless of outcome.
func (Local) Resolve(_ context.Context, ref string) (mailer.Attachment, error) {
	if strings.TrimSpace(ref) == "" {
		return mailer.Attachment{}, ErrInvalidRef
	}

	content, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return mailer.Attachment{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if len(content) == 0 {
		return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrEmptyFile, ref)
	}

	filename := filepath.Base(ref)
	return mailer.Attachment{
		Filename:    filename,
		ContentType: DetectMIME(filename, content),
		Content:     content,
	}, nil
}

// ResolveAll resolves every reference and validates the resulting set.
// Either all attachments come back valid or none do.
func ResolveAll(ctx context.Context, r Resolver, refs []string) ([]mailer.Attachment, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	resolved := make([]mailer.Attachment, 0, len(refs))
	for _, ref := range refs {
		a, err := r.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, a)
	}

	if err := Validate(resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}
