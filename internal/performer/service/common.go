package service

import (
	"context"
	"errors"
	"log/slog"

	"eyecandy/internal/audit"
	id "eyecandy/pkg/domain"
	dErrors "eyecandy/pkg/domain-errors"
	"eyecandy/pkg/platform/sentinel"
	"eyecandy/pkg/requestcontext"
)

func wrapStoreErr(err error, notFoundMsg, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

// auditEmitter writes an audit log line and publishes the event. Publishing
// failures are logged and never fail the caller.
type auditEmitter struct {
	logger    *slog.Logger
	publisher AuditPublisher
}

func (e *auditEmitter) emit(ctx context.Context, event audit.AuditEvent, performerID id.PerformerID, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if e.logger != nil {
		args := append(attributes,
			"performer_id", performerID.String(),
			"request_id", requestID,
			"event", string(event),
			"log_type", "audit",
		)
		e.logger.InfoContext(ctx, string(event), args...)
	}
	if e.publisher == nil {
		return
	}
	ev := audit.Event{
		Action:      string(event),
		PerformerID: performerID.String(),
		RequestID:   requestID,
	}
	if viewerID, ok := stringAttr(attributes, "viewer_id"); ok {
		ev.ViewerKey = "viewer:" + viewerID
	}
	if err := e.publisher.Emit(ctx, ev); err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}

func stringAttr(attributes []any, key string) (string, bool) {
	for i := 0; i+1 < len(attributes); i += 2 {
		if k, ok := attributes[i].(string); ok && k == key {
			v, ok := attributes[i+1].(string)
			return v, ok
		}
	}
	return "", false
}
