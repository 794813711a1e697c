package activity

import (
	"math"
	"strings"
	"time"
)

// Verbs emitted for preference activity.
const (
	VerbBoundsUpdated = "preferences.bounds.updated"
	VerbValueReset    = "preferences.value.reset"
	VerbSnapshotSaved = "preferences.snapshot.saved"
)

// Object types used by preference events.
const (
	ObjectPreference = "preference"
	ObjectSnapshot   = "preferences.snapshot"
)

// PreferenceEventInput describes the fields shared by preference events.
type PreferenceEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Metadata   map[string]any
	Rule       string
	Source     string
	Target     string
	Minimum    float64
	Maximum    float64
	Previous   string
	Value      string
	Profile    string
	SnapshotID string
	OccurredAt time.Time
}

// BuildBoundsUpdatedEvent describes a dependency rule recomputing the bounds
// of Target.
func BuildBoundsUpdatedEvent(input PreferenceEventInput) Event {
	metadata := baseMetadata(input)
	setBound(metadata, "minimum", input.Minimum)
	setBound(metadata, "maximum", input.Maximum)
	return buildPreferenceEvent(VerbBoundsUpdated, ObjectPreference, input.Target, input, metadata)
}

// BuildValueResetEvent describes Target being reset to its default after its
// bounds moved past the stored value.
func BuildValueResetEvent(input PreferenceEventInput) Event {
	metadata := baseMetadata(input)
	if input.Previous != "" {
		metadata["old_value"] = input.Previous
	}
	metadata["new_value"] = input.Value
	return buildPreferenceEvent(VerbValueReset, ObjectPreference, input.Target, input, metadata)
}

// BuildSnapshotSavedEvent describes a preference snapshot being persisted.
func BuildSnapshotSavedEvent(input PreferenceEventInput) Event {
	metadata := baseMetadata(input)
	if input.Profile != "" {
		metadata["profile"] = input.Profile
	}
	objectID := strings.TrimSpace(input.SnapshotID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Profile)
	}
	return buildPreferenceEvent(VerbSnapshotSaved, ObjectSnapshot, objectID, input, metadata)
}

func baseMetadata(input PreferenceEventInput) map[string]any {
	metadata := cloneMap(input.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	if input.Rule != "" {
		metadata["rule"] = input.Rule
	}
	if input.Source != "" {
		metadata["source"] = input.Source
	}
	if input.SnapshotID != "" {
		metadata["snapshot_id"] = input.SnapshotID
	}
	return metadata
}

// setBound skips infinite bounds, which mean "unbounded".
func setBound(metadata map[string]any, key string, value float64) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return
	}
	metadata[key] = value
}

func buildPreferenceEvent(verb, objectType, objectID string, input PreferenceEventInput, metadata map[string]any) Event {
	objectID = strings.TrimSpace(objectID)
	if objectID == "" {
		objectID = objectType
	}
	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
