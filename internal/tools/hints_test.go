package tools_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blastengine/internal/tools"
	"github.com/dmitrymomot/blastengine/pkg/attachments"
	"github.com/dmitrymomot/blastengine/pkg/blastengine"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
)

func TestHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unauthorized",
			err:  &blastengine.APIError{StatusCode: 401, Message: "unauthorized"},
			want: "login ID and API key",
		},
		{
			name: "forbidden",
			err:  &blastengine.APIError{StatusCode: 403, Message: "forbidden"},
			want: "login ID and API key",
		},
		{
			name: "rate limited",
			err:  &blastengine.APIError{StatusCode: 429, Message: "slow down"},
			want: "wait a few seconds",
		},
		{
			name: "bad request",
			err:  &blastengine.APIError{StatusCode: 400, Message: "invalid payload"},
			want: "request parameters",
		},
		{
			name: "attachment too large",
			err:  fmt.Errorf("resolving: %w", attachments.ErrTooLarge),
			want: "attachment limits",
		},
		{
			name: "blocked extension",
			err:  attachments.ErrDisallowedType,
			want: "attachment limits",
		},
		{
			name: "invalid recipient",
			err:  fmt.Errorf("%w: bogus", mailer.ErrInvalidEmail),
			want: "request parameters",
		},
		{
			name: "schedule in past",
			err:  mailer.ErrScheduleInPast,
			want: "request parameters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hints := tools.Hints(tt.err)
			require.NotEmpty(t, hints)
			require.Contains(t, hints[0], tt.want)
		})
	}

	t.Run("unknown error yields no hints", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, tools.Hints(errors.New("boom")))
	})

	t.Run("overlapping hints deduped", func(t *testing.T) {
		t.Parallel()

		// A 400 response wrapping a validation sentinel maps to the same
		// hint twice; only one copy should survive.
		err := fmt.Errorf("%w: %w",
			&blastengine.APIError{StatusCode: 400, Message: "invalid"},
			mailer.ErrInvalidEmail,
		)
		require.Len(t, tools.Hints(err), 1)
	})
}

func TestErrorText(t *testing.T) {
	t.Parallel()

	t.Run("includes hints", func(t *testing.T) {
		t.Parallel()

		text := tools.ErrorText("bulk email send",
			&blastengine.APIError{StatusCode: 401, Message: "unauthorized"})
		require.Contains(t, text, "bulk email send failed:")
		require.Contains(t, text, "Hint: Verify the Blastengine login ID")
	})

	t.Run("redacts secrets in error chain", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("token abcdefghijklmnopqrstuvwxyz0123456789 rejected")
		text := tools.ErrorText("transactional email send", err)
		require.NotContains(t, text, "abcdefghijklmnopqrstuvwxyz0123456789")
		require.Contains(t, text, "***")
	})

	t.Run("no hints for unknown errors", func(t *testing.T) {
		t.Parallel()

		text := tools.ErrorText("send", errors.New("boom"))
		require.Equal(t, "send failed: boom", text)
	})
}
