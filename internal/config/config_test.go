package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		loginID string
		apiKey  string
		wantErr error
	}{
		{
			name:    "valid username",
			loginID: "mailer-ops_01",
			apiKey:  "0123456789abcdef0123456789abcdef",
		},
		{
			name:    "valid email login",
			loginID: "ops+mail@example.com",
			apiKey:  "0123456789abcdef",
		},
		{
			name:    "missing login",
			apiKey:  "0123456789abcdef",
			wantErr: ErrMissingCredentials,
		},
		{
			name:    "missing key",
			loginID: "ops",
			wantErr: ErrMissingCredentials,
		},
		{
			name:    "login with spaces",
			loginID: "ops user",
			apiKey:  "0123456789abcdef",
			wantErr: ErrInvalidLoginID,
		},
		{
			name:    "login with slash",
			loginID: "ops/admin",
			apiKey:  "0123456789abcdef",
			wantErr: ErrInvalidLoginID,
		},
		{
			name:    "short key",
			loginID: "ops",
			apiKey:  "tooshort",
			wantErr: ErrAPIKeyTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateCredentials(tt.loginID, tt.apiKey)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("full environment", func(t *testing.T) {
		t.Setenv("BLASTENGINE_LOGIN_ID", "ops@example.com")
		t.Setenv("BLASTENGINE_API_KEY", "0123456789abcdef0123456789abcdef")
		t.Setenv("BLASTENGINE_FROM_EMAIL", "noreply@example.com")
		t.Setenv("HTTP_ADDR", ":9090")
		t.Setenv("BLASTENGINE_TIMEOUT", "5s")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, ":9090", cfg.HTTPAddr)
		require.Equal(t, "ops@example.com", cfg.Blastengine.LoginID)
		require.Equal(t, 5*time.Second, cfg.Blastengine.Timeout)
		require.Equal(t, "https://app.engn.jp/api/v1", cfg.Blastengine.BaseURL)
		require.Equal(t, "noreply@example.com", cfg.Sender.SenderEmail)
		require.Equal(t, "(HTML mail)", cfg.Mailer.FallbackText)
		require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("rejects short api key", func(t *testing.T) {
		t.Setenv("BLASTENGINE_LOGIN_ID", "ops@example.com")
		t.Setenv("BLASTENGINE_API_KEY", "short")

		_, err := Load()
		require.ErrorIs(t, err, ErrAPIKeyTooShort)
	})
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	m, err := LoadManifest()
	require.NoError(t, err)
	require.Equal(t, "blastengine_mailer", m.Name)
	require.Len(t, m.Tools, 2)
	require.Equal(t, "send_transactional_email", m.Tools[0].Name)
	require.Equal(t, "send_bulk_email", m.Tools[1].Name)

	var apiKey *CredentialField
	for i := range m.Credentials {
		if m.Credentials[i].Name == "api_key" {
			apiKey = &m.Credentials[i]
		}
	}
	require.NotNil(t, apiKey)
	require.True(t, apiKey.Required)
	require.Equal(t, "secret", apiKey.Type)
}
