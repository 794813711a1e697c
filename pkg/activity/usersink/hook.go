package usersink

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-preferences/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook forwards preference activity to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
	// Channel overrides the event channel when set.
	Channel string
}

// Notify maps the event into an ActivityRecord. Identity fields that are not
// valid UUIDs are recorded as uuid.Nil and kept verbatim in the record data.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	if !normalized.Valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := usertypes.ActivityRecord{
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       normalized.Metadata,
		OccurredAt: normalized.OccurredAt,
	}
	if channel := strings.TrimSpace(h.Channel); channel != "" {
		record.Channel = channel
	}
	record.ActorID, record.Data = parseIdentity("actor_id", normalized.ActorID, record.Data)
	record.UserID, record.Data = parseIdentity("user_id", normalized.UserID, record.Data)
	record.TenantID, record.Data = parseIdentity("tenant_id", normalized.TenantID, record.Data)
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}

	return h.Sink.Log(ctx, record)
}

func parseIdentity(field, value string, data map[string]any) (uuid.UUID, map[string]any) {
	if value == "" {
		return uuid.Nil, data
	}
	id, err := uuid.Parse(value)
	if err == nil {
		return id, data
	}
	if data == nil {
		data = map[string]any{}
	}
	data[field] = value
	return uuid.Nil, data
}
