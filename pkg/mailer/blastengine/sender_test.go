package blastengine_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	api "github.com/dmitrymomot/blastengine/pkg/blastengine"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
	sender "github.com/dmitrymomot/blastengine/pkg/mailer/blastengine"
)

func newSender(t *testing.T, srv *httptest.Server, cfg sender.Config) *sender.Sender {
	t.Helper()

	client, err := api.New(api.Config{
		LoginID: "login@example.com",
		APIKey:  "test-api-key-0123456789abcdef",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return sender.New(client, cfg)
}

func decodePayload(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	return payload
}

func TestSend_BuildsTransactionalPayload(t *testing.T) {
	t.Parallel()

	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deliveries/transaction", r.URL.Path)
		payload = decodePayload(t, r)
		_, _ = w.Write([]byte(`{"delivery_id": "tx-9"}`))
	}))
	defer srv.Close()

	s := newSender(t, srv, sender.Config{})
	id, err := s.Send(context.Background(), &mailer.Email{
		Subject:  "Hello",
		From:     "noreply@example.com",
		FromName: "Example",
		To:       []string{"first@example.com", "second@example.com"},
		CC:       []string{"cc@example.com"},
		BCC:      []string{"bcc@example.com"},
		Text:     "hi",
		HTML:     "<p>hi</p>",
		ReplyTo:  "replies@example.com",
	})

	require.NoError(t, err)
	require.Equal(t, "tx-9", id)

	require.Equal(t, "Hello", payload["subject"])
	require.Equal(t, "UTF-8", payload["encode"])
	require.Equal(t, "hi", payload["text_part"])
	require.Equal(t, "<p>hi</p>", payload["html_part"])

	from := payload["from"].(map[string]any)
	require.Equal(t, "noreply@example.com", from["email"])
	require.Equal(t, "Example", from["name"])

	// Single-recipient API: first To on the wire, the rest folded into cc.
	require.Equal(t, "first@example.com", payload["to"])
	require.Equal(t, []any{"cc@example.com", "second@example.com"}, payload["cc"])
	require.Equal(t, []any{"bcc@example.com"}, payload["bcc"])

	headers := payload["custom_headers"].(map[string]any)
	require.Equal(t, "replies@example.com", headers["Reply-To"])
}

func TestSend_DefaultsFromConfig(t *testing.T) {
	t.Parallel()

	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload = decodePayload(t, r)
		_, _ = w.Write([]byte(`{"delivery_id": "tx-1"}`))
	}))
	defer srv.Close()

	s := newSender(t, srv, sender.Config{
		SenderEmail: "default@example.com",
		SenderName:  "Default Sender",
	})
	_, err := s.Send(context.Background(), &mailer.Email{
		Subject: "Hello",
		To:      []string{"user@example.com"},
		Text:    "hi",
	})

	require.NoError(t, err)
	from := payload["from"].(map[string]any)
	require.Equal(t, "default@example.com", from["email"])
	require.Equal(t, "Default Sender", from["name"])
}

func TestSend_NameFallsBackToAddress(t *testing.T) {
	t.Parallel()

	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload = decodePayload(t, r)
		_, _ = w.Write([]byte(`{"delivery_id": "tx-1"}`))
	}))
	defer srv.Close()

	s := newSender(t, srv, sender.Config{})
	_, err := s.Send(context.Background(), &mailer.Email{
		Subject: "Hello",
		From:    "noreply@example.com",
		To:      []string{"user@example.com"},
		Text:    "hi",
	})

	require.NoError(t, err)
	from := payload["from"].(map[string]any)
	require.Equal(t, "noreply@example.com", from["name"])
}

func TestSend_NoSender(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()

	s := newSender(t, srv, sender.Config{})
	_, err := s.Send(context.Background(), &mailer.Email{
		Subject: "Hello",
		To:      []string{"user@example.com"},
		Text:    "hi",
	})
	require.ErrorIs(t, err, mailer.ErrNoSender)
}

func TestSendCampaign_StrictOrder(t *testing.T) {
	t.Parallel()

	var sequence []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sequence = append(sequence, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"delivery_id": "blk-3"}`))
	}))
	defer srv.Close()

	at := time.Date(2027, 1, 2, 3, 4, 5, 0, time.UTC)
	s := newSender(t, srv, sender.Config{SenderEmail: "noreply@example.com"})
	id, err := s.SendCampaign(context.Background(), &mailer.Email{
		Subject:    "Campaign",
		Text:       "news",
		ScheduleAt: &at,
	}, []string{"a@example.com", "b@example.com"})

	require.NoError(t, err)
	require.Equal(t, "blk-3", id)
	require.Equal(t, []string{
		"POST /deliveries/bulk/begin",
		"PUT /deliveries/bulk/update/blk-3",
		"PATCH /deliveries/bulk/commit/blk-3",
	}, sequence)
}

func TestSendCampaign_ImmediateWithoutSchedule(t *testing.T) {
	t.Parallel()

	var sequence []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sequence = append(sequence, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"delivery_id": "blk-4"}`))
	}))
	defer srv.Close()

	s := newSender(t, srv, sender.Config{SenderEmail: "noreply@example.com"})
	_, err := s.SendCampaign(context.Background(), &mailer.Email{
		Subject: "Campaign",
		Text:    "news",
	}, []string{"a@example.com"})

	require.NoError(t, err)
	require.Contains(t, sequence, "PATCH /deliveries/bulk/commit/blk-4/immediate")
}

func TestSendCampaign_NoRecipients(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()

	s := newSender(t, srv, sender.Config{SenderEmail: "noreply@example.com"})
	_, err := s.SendCampaign(context.Background(), &mailer.Email{Subject: "x", Text: "y"}, nil)
	require.ErrorIs(t, err, mailer.ErrNoRecipient)
}
