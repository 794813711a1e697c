package activity

import (
	"math"
	"testing"
)

func TestBuildBoundsUpdatedEvent(t *testing.T) {
	meta := map[string]any{"custom": "value"}
	input := PreferenceEventInput{
		ActorID:  " actor ",
		Metadata: meta,
		Rule:     "NUMBER_OF_SLICES->FIRST_SLICE_INDEX",
		Source:   "NUMBER_OF_SLICES",
		Target:   "FIRST_SLICE_INDEX",
		Minimum:  0,
		Maximum:  29,
	}

	event := BuildBoundsUpdatedEvent(input)

	if event.Verb != VerbBoundsUpdated {
		t.Fatalf("expected verb %s got %s", VerbBoundsUpdated, event.Verb)
	}
	if event.ObjectType != ObjectPreference || event.ObjectID != "FIRST_SLICE_INDEX" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.ActorID != "actor" {
		t.Fatalf("expected trimmed actor, got %q", event.ActorID)
	}
	if event.Metadata["rule"] != input.Rule || event.Metadata["source"] != "NUMBER_OF_SLICES" {
		t.Fatalf("expected rule metadata, got %+v", event.Metadata)
	}
	if event.Metadata["minimum"] != float64(0) || event.Metadata["maximum"] != float64(29) {
		t.Fatalf("expected bounds metadata, got %+v", event.Metadata)
	}
	if event.Metadata["custom"] != "value" {
		t.Fatalf("expected custom metadata carried, got %+v", event.Metadata)
	}
	event.Metadata["custom"] = "changed"
	if meta["custom"] != "value" {
		t.Fatalf("expected input metadata untouched")
	}
}

func TestBuildBoundsUpdatedEventSkipsInfiniteBounds(t *testing.T) {
	event := BuildBoundsUpdatedEvent(PreferenceEventInput{
		Target:  "FIRST_SLICE_INDEX",
		Minimum: math.Inf(-1),
		Maximum: 9,
	})
	if _, ok := event.Metadata["minimum"]; ok {
		t.Fatalf("expected unbounded minimum omitted, got %+v", event.Metadata)
	}
	if event.Metadata["maximum"] != float64(9) {
		t.Fatalf("expected maximum metadata, got %+v", event.Metadata)
	}
}

func TestBuildValueResetEvent(t *testing.T) {
	event := BuildValueResetEvent(PreferenceEventInput{
		Target:   "FIRST_SLICE_INDEX",
		Previous: "50",
		Value:    "0",
	})
	if event.Verb != VerbValueReset || event.ObjectID != "FIRST_SLICE_INDEX" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Metadata["old_value"] != "50" || event.Metadata["new_value"] != "0" {
		t.Fatalf("expected old/new values, got %+v", event.Metadata)
	}
}

func TestBuildSnapshotSavedEventPrefersSnapshotID(t *testing.T) {
	event := BuildSnapshotSavedEvent(PreferenceEventInput{
		Profile:    "slicer",
		SnapshotID: "snap-1",
	})
	if event.ObjectType != ObjectSnapshot || event.ObjectID != "snap-1" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.Metadata["profile"] != "slicer" || event.Metadata["snapshot_id"] != "snap-1" {
		t.Fatalf("expected snapshot metadata, got %+v", event.Metadata)
	}

	fallback := BuildSnapshotSavedEvent(PreferenceEventInput{Profile: "slicer"})
	if fallback.ObjectID != "slicer" {
		t.Fatalf("expected profile fallback, got %q", fallback.ObjectID)
	}

	empty := BuildSnapshotSavedEvent(PreferenceEventInput{})
	if empty.ObjectID != ObjectSnapshot {
		t.Fatalf("expected object type fallback, got %q", empty.ObjectID)
	}
}
