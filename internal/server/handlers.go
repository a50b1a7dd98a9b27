package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/blastengine/internal/tools"
	"github.com/dmitrymomot/blastengine/pkg/attachments"
	"github.com/dmitrymomot/blastengine/pkg/blastengine"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string   `json:"error"`
	Hints []string `json:"hints,omitempty"`
}

// handleSendTransactional serves POST /v1/tools/send-transactional.
func (s *Server) handleSendTransactional(w http.ResponseWriter, r *http.Request) {
	var params tools.TransactionalParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	result, err := s.toolset.SendTransactional(r.Context(), params)
	if err != nil {
		s.writeToolError(w, r, "transactional email send", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSendBulk serves POST /v1/tools/send-bulk.
func (s *Server) handleSendBulk(w http.ResponseWriter, r *http.Request) {
	var params tools.BulkParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	result, err := s.toolset.SendBulk(r.Context(), params)
	if err != nil {
		s.writeToolError(w, r, "bulk email send", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeToolError logs the failure and maps it to an HTTP status. The
// response text is already redacted by tools.ErrorText.
func (s *Server) writeToolError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status := statusFor(err)
	s.log.ErrorContext(r.Context(), "tool invocation failed",
		slog.String("action", action),
		slog.Int("status", status),
		slog.Any("error", err),
	)
	writeJSON(w, status, errorResponse{
		Error: tools.ErrorText(action, err),
		Hints: tools.Hints(err),
	})
}

// callerErrors map to 400: the workflow author can fix these by adjusting
// the tool inputs.
var callerErrors = []error{
	mailer.ErrNoRecipient,
	mailer.ErrNoSubject,
	mailer.ErrNoSender,
	mailer.ErrNoContent,
	mailer.ErrInvalidEmail,
	mailer.ErrTooManyRecipients,
	mailer.ErrInvalidSchedule,
	mailer.ErrScheduleInPast,
	mailer.ErrTemplateNotFound,
	mailer.ErrLayoutNotFound,
	mailer.ErrRenderFailed,
	tools.ErrInvalidHeaders,
	tools.ErrRecipientsFileUnreadable,
	tools.ErrTemplatesUnavailable,
	attachments.ErrInvalidRef,
	attachments.ErrNotFound,
	attachments.ErrEmptyFile,
	attachments.ErrTooManyFiles,
	attachments.ErrTooLarge,
	attachments.ErrDisallowedType,
}

// upstreamErrors map to 502: the delivery API rejected or never received
// the request.
var upstreamErrors = []error{
	blastengine.ErrRejected,
	blastengine.ErrUnavailable,
	blastengine.ErrTransport,
	blastengine.ErrMalformedResponse,
	attachments.ErrFetchFailed,
	attachments.ErrAccessDenied,
}

func statusFor(err error) int {
	for _, target := range callerErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range upstreamErrors {
		if errors.Is(err, target) {
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
