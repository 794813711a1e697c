package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	prefs "github.com/goliatone/go-preferences"
	"github.com/goliatone/go-preferences/pkg/activity"
	"github.com/goliatone/go-preferences/pkg/session"
	"github.com/google/uuid"
)

func newSlicerContainer(t *testing.T) *prefs.Container {
	t.Helper()
	engine, err := prefs.NewEngine(prefs.SessionDefaults())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	container := prefs.NewContainer(prefs.WithNotifier(engine))
	if err := container.Add(prefs.NewSlicerEntries(nil)...); err != nil {
		t.Fatalf("add: %v", err)
	}
	return container
}

func maximumOf(t *testing.T, container *prefs.Container, key prefs.Key) float64 {
	t.Helper()
	entry, ok := container.Lookup(key)
	if !ok {
		t.Fatalf("missing entry %s", key)
	}
	_, maximum, _ := entry.Bounds()
	return maximum
}

func valueOf(t *testing.T, container *prefs.Container, key prefs.Key) string {
	t.Helper()
	entry, ok := container.Lookup(key)
	if !ok {
		t.Fatalf("missing entry %s", key)
	}
	return entry.Value()
}

func TestRestoreAppliesAndRefreshesDependents(t *testing.T) {
	cases := []struct {
		name      string
		first     string
		wantFirst string
	}{
		{name: "value within new bounds", first: "12", wantFirst: "12"},
		{name: "value above new bounds resets", first: "50", wantFirst: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			ref := session.Ref{Domain: "slicer", Scope: "user", ID: "u-1"}
			_, err := store.Save(context.Background(), ref, session.Snapshot{
				"NUMBER_OF_SLICES":  "30",
				"FIRST_SLICE_INDEX": tc.first,
				"LEGACY_SETTING":    "1",
			}, session.Meta{SnapshotID: "snap-1"})
			if err != nil {
				t.Fatalf("seed: %v", err)
			}

			container := newSlicerContainer(t)
			result, err := session.Session{Store: store}.Restore(context.Background(), ref, container)
			if err != nil {
				t.Fatalf("restore: %v", err)
			}
			if !result.Found || result.Meta.SnapshotID != "snap-1" {
				t.Fatalf("unexpected result: %+v", result)
			}
			if len(result.Unknown) != 1 || result.Unknown[0] != "LEGACY_SETTING" {
				t.Fatalf("expected unknown LEGACY_SETTING, got %v", result.Unknown)
			}
			if got := maximumOf(t, container, prefs.KeyFirstSliceIndex); got != 29 {
				t.Fatalf("expected maximum 29, got %v", got)
			}
			if got := valueOf(t, container, prefs.KeyFirstSliceIndex); got != tc.wantFirst {
				t.Fatalf("expected first slice index %q, got %q", tc.wantFirst, got)
			}
		})
	}
}

func TestRestoreMissingSnapshotLeavesContainer(t *testing.T) {
	container := newSlicerContainer(t)
	before := container.Values()

	result, err := session.Session{Store: session.NewMemoryStore()}.Restore(
		context.Background(), session.Ref{Domain: "slicer", Scope: "system"}, container)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if result.Found {
		t.Fatalf("expected no snapshot")
	}
	for name, value := range container.Values() {
		if before[name] != value {
			t.Fatalf("expected %s unchanged, got %q", name, value)
		}
	}
}

func TestRestoreSurfacesFormatError(t *testing.T) {
	store := session.NewMemoryStore()
	ref := session.Ref{Domain: "slicer", Scope: "system"}
	if _, err := store.Save(context.Background(), ref, session.Snapshot{"NUMBER_OF_SLICES": "many"}, session.Meta{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := session.Session{Store: store}.Restore(context.Background(), ref, newSlicerContainer(t))
	if !errors.Is(err, prefs.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestPersistGeneratesMetaAndChecksETag(t *testing.T) {
	store := session.NewMemoryStore()
	ref := session.Ref{Domain: "slicer", Scope: "user", ID: "u-1"}
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sess := session.Session{Store: store, Now: func() time.Time { return now }}

	container := newSlicerContainer(t)
	if _, err := container.Set("NUMBER_OF_SLICES", "40"); err != nil {
		t.Fatalf("set: %v", err)
	}

	first, err := sess.Persist(context.Background(), ref, container, session.Meta{})
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if _, err := uuid.Parse(first.SnapshotID); err != nil {
		t.Fatalf("expected uuid snapshot id, got %q", first.SnapshotID)
	}
	if first.ETag == "" || !first.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected meta: %+v", first)
	}

	stored, _, ok, err := store.Load(context.Background(), ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%t err=%v", ok, err)
	}
	if stored["NUMBER_OF_SLICES"] != "40" || stored["FIRST_SLICE_INDEX"] != "0" {
		t.Fatalf("unexpected stored snapshot: %v", stored)
	}

	second, err := sess.Persist(context.Background(), ref, container, session.Meta{ETag: first.ETag})
	if err != nil {
		t.Fatalf("persist with matching etag: %v", err)
	}
	if second.ETag == first.ETag {
		t.Fatalf("expected fresh etag")
	}

	_, err = sess.Persist(context.Background(), ref, container, session.Meta{ETag: first.ETag})
	if !errors.Is(err, session.ErrETagMismatch) {
		t.Fatalf("expected ErrETagMismatch, got %v", err)
	}
}

func TestPersistEmitsSnapshotSaved(t *testing.T) {
	capture := &activity.CaptureHook{}
	sess := session.Session{
		Store:   session.NewMemoryStore(),
		Emitter: activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true}),
	}
	ref := session.Ref{Domain: "slicer", Scope: "user", ID: "u-1"}

	meta, err := sess.Persist(context.Background(), ref, newSlicerContainer(t), session.Meta{SnapshotID: "snap-9"})
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if meta.SnapshotID != "snap-9" {
		t.Fatalf("expected caller snapshot id kept, got %q", meta.SnapshotID)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(capture.Events))
	}
	event := capture.Events[0]
	if event.Verb != activity.VerbSnapshotSaved || event.ObjectID != "snap-9" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Metadata["profile"] != "user/u-1/slicer" {
		t.Fatalf("expected profile metadata, got %+v", event.Metadata)
	}
}

func TestPersistReportsHookFailureAfterSave(t *testing.T) {
	store := session.NewMemoryStore()
	capture := &activity.CaptureHook{Err: errors.New("hook down")}
	sess := session.Session{
		Store:   store,
		Emitter: activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true}),
	}
	ref := session.Ref{Domain: "slicer", Scope: "system"}

	meta, err := sess.Persist(context.Background(), ref, newSlicerContainer(t), session.Meta{})
	if !errors.Is(err, session.ErrActivity) {
		t.Fatalf("expected ErrActivity, got %v", err)
	}
	_, stored, ok, _ := store.Load(context.Background(), ref)
	if !ok || stored.SnapshotID != meta.SnapshotID {
		t.Fatalf("expected snapshot saved despite hook failure, got %+v", stored)
	}
}

func TestSessionRequiresStoreAndContainer(t *testing.T) {
	ref := session.Ref{Domain: "slicer", Scope: "system"}
	if _, err := (session.Session{}).Restore(context.Background(), ref, prefs.NewContainer()); err == nil {
		t.Fatalf("expected missing store error")
	}
	if _, err := (session.Session{Store: session.NewMemoryStore()}).Persist(context.Background(), ref, nil, session.Meta{}); err == nil {
		t.Fatalf("expected missing container error")
	}
}
