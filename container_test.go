package prefs

import (
	"errors"
	"sort"
	"testing"
)

func TestContainerAddAndLookup(t *testing.T) {
	container := NewContainer()
	entries := NewSlicerEntries(nil)
	if err := container.Add(entries...); err != nil {
		t.Fatalf("add: %v", err)
	}

	if container.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", container.Len())
	}
	names := container.Names()
	if names[0] != "NUMBER_OF_SLICES" || names[1] != "FIRST_SLICE_INDEX" {
		t.Fatalf("expected insertion order, got %v", names)
	}
	for _, entry := range entries {
		if entry.Container() != container {
			t.Fatalf("expected back-reference on %s", entry.Name())
		}
	}

	if got, ok := container.Get("FIRST_SLICE_INDEX"); !ok || got != entries[1] {
		t.Fatalf("expected Get to return the stored entry")
	}
	if got, ok := container.Lookup(KeyNumberOfSlices); !ok || got != entries[0] {
		t.Fatalf("expected Lookup to return the stored entry")
	}
	if _, ok := container.Get("MISSING"); ok {
		t.Fatalf("expected missing entry")
	}
	if _, ok := container.Lookup(KeyUndefined); ok {
		t.Fatalf("expected undefined key lookup to miss")
	}

}

func TestNilContainerIsEmpty(t *testing.T) {
	var container *Container
	if _, ok := container.Get("NUMBER_OF_SLICES"); ok || container.Len() != 0 {
		t.Fatalf("expected nil container to be empty")
	}
	if container.Remove("NUMBER_OF_SLICES") {
		t.Fatalf("expected remove on nil container to report false")
	}
	if ok, err := container.Set("NUMBER_OF_SLICES", "20"); ok || err != nil {
		t.Fatalf("expected set on nil container to miss, got ok=%t err=%v", ok, err)
	}
	entry := NewEntry("A", KindInteger, nil)
	if err := container.Add(entry); !errors.Is(err, ErrNilContainer) {
		t.Fatalf("expected ErrNilContainer, got %v", err)
	}
	if entry.Container() != nil {
		t.Fatalf("expected entry to stay detached")
	}
	if container.Names() != nil || container.Entries() != nil || container.Refresh() != nil {
		t.Fatalf("expected nil container helpers to be empty")
	}
}

func TestContainerAddRejectsDuplicatesAndNil(t *testing.T) {
	container := NewContainer()
	first := NewEntry("A", KindInteger, nil)
	if err := container.Add(first); err != nil {
		t.Fatalf("add: %v", err)
	}

	duplicate := NewEntry("A", KindInteger, nil)
	if err := container.Add(duplicate); !errors.Is(err, ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
	if duplicate.Container() != nil {
		t.Fatalf("expected rejected entry to stay detached")
	}
	if err := container.Add(NewEntry("B", KindInteger, nil), nil); !errors.Is(err, ErrNilEntry) {
		t.Fatalf("expected ErrNilEntry, got %v", err)
	}
	if container.Len() != 2 {
		t.Fatalf("expected entries before the nil one to stay, got %d", container.Len())
	}
}

func TestContainerSetNotifiesOnChange(t *testing.T) {
	var calls int
	container := NewContainer(WithNotifier(NotifierFunc(func(*Entry) error {
		calls++
		return nil
	})))
	if err := container.Add(NewSlicerEntries(nil)...); err != nil {
		t.Fatalf("add: %v", err)
	}

	found, err := container.Set("NUMBER_OF_SLICES", "100")
	if err != nil || !found || calls != 0 {
		t.Fatalf("expected unchanged value to skip notifier, got found=%t calls=%d err=%v", found, calls, err)
	}
	if _, err := container.Set("NUMBER_OF_SLICES", "30"); err != nil || calls != 1 {
		t.Fatalf("expected one notification, got calls=%d err=%v", calls, err)
	}
	if _, err := container.Set("FIRST_SLICE_INDEX", "3"); err != nil || calls != 1 {
		t.Fatalf("expected non-notifier edit to skip notifier, got calls=%d err=%v", calls, err)
	}

	found, err = container.Set("MISSING", "1")
	if found || err != nil {
		t.Fatalf("expected absent name to report false, got found=%t err=%v", found, err)
	}
}

func TestContainerSetKeepsValueOnNotifierError(t *testing.T) {
	boom := errors.New("boom")
	container := NewContainer(WithNotifier(NotifierFunc(func(*Entry) error { return boom })))
	if err := container.Add(NewSlicerEntries(nil)...); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := container.Set("NUMBER_OF_SLICES", "30"); !errors.Is(err, boom) {
		t.Fatalf("expected notifier error, got %v", err)
	}
	if got, _ := container.Get("NUMBER_OF_SLICES"); got.Value() != "30" {
		t.Fatalf("expected value kept, got %q", got.Value())
	}
}

func TestContainerFormatErrorIsolated(t *testing.T) {
	container := NewContainer()
	if err := container.Add(NewSlicerEntries(nil)...); err != nil {
		t.Fatalf("add: %v", err)
	}
	first, _ := container.Lookup(KeyFirstSliceIndex)
	first.SetValue("first")

	if _, err := first.Int(); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	slices, _ := container.Lookup(KeyNumberOfSlices)
	if n, err := slices.Int(); err != nil || n != 100 {
		t.Fatalf("expected other entry unaffected, got %d err=%v", n, err)
	}
}

func TestContainerRemove(t *testing.T) {
	container := NewContainer()
	a, b, c := NewEntry("A", KindText, nil), NewEntry("B", KindText, nil), NewEntry("C", KindText, nil)
	if err := container.Add(a, b, c); err != nil {
		t.Fatalf("add: %v", err)
	}

	if !container.Remove("B") || container.Remove("B") {
		t.Fatalf("expected single removal")
	}
	if b.Container() != nil {
		t.Fatalf("expected removed entry detached")
	}
	if got, ok := container.Get("C"); !ok || got != c {
		t.Fatalf("expected index rebuilt after removal")
	}
	names := container.Names()
	if len(names) != 2 || names[0] != "A" || names[1] != "C" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestContainerValuesApplyRefresh(t *testing.T) {
	var notified []string
	container := NewContainer(WithNotifier(NotifierFunc(func(source *Entry) error {
		notified = append(notified, source.Name())
		return nil
	})))
	if err := container.Add(NewSlicerEntries(nil)...); err != nil {
		t.Fatalf("add: %v", err)
	}

	values := container.Values()
	if values["NUMBER_OF_SLICES"] != "100" || values["FIRST_SLICE_INDEX"] != "0" {
		t.Fatalf("unexpected values: %v", values)
	}
	values["NUMBER_OF_SLICES"] = "mutated"
	if got, _ := container.Get("NUMBER_OF_SLICES"); got.Value() != "100" {
		t.Fatalf("expected Values to be a copy")
	}

	unknown := container.Apply(map[string]string{
		"NUMBER_OF_SLICES": "20",
		"OLD_A":            "1",
		"OLD_B":            "2",
	})
	sort.Strings(unknown)
	if len(unknown) != 2 || unknown[0] != "OLD_A" || unknown[1] != "OLD_B" {
		t.Fatalf("unexpected unknown names: %v", unknown)
	}
	if len(notified) != 0 {
		t.Fatalf("expected Apply not to notify, got %v", notified)
	}

	if err := container.Refresh(); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(notified) != 1 || notified[0] != "NUMBER_OF_SLICES" {
		t.Fatalf("expected refresh to notify update notifiers only, got %v", notified)
	}
}
