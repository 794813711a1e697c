package prefs

import (
	"math"
	"strconv"
)

// Entry is a single named, typed, bounded and mutable preference. Its value is
// stored as text and converted on demand.
type Entry struct {
	name        string
	kind        Kind
	value       string
	format      *Format
	displayName string
	description string
	notifier    bool

	// container is a lookup reference only; the container owns the entry.
	container *Container
}

// EntryOption configures an Entry on creation.
type EntryOption func(*Entry)

// WithValue sets the initial value. Without it the format default is used.
func WithValue(text string) EntryOption {
	return func(e *Entry) {
		e.value = text
	}
}

// WithDisplayName sets the human-friendly name.
func WithDisplayName(name string) EntryOption {
	return func(e *Entry) {
		e.displayName = name
	}
}

// WithDescription attaches a description.
func WithDescription(description string) EntryOption {
	return func(e *Entry) {
		e.description = description
	}
}

// AsUpdateNotifier marks the entry as a source whose changes are forwarded to
// the container notifier.
func AsUpdateNotifier() EntryOption {
	return func(e *Entry) {
		e.notifier = true
	}
}

// NewEntry builds a detached entry. The format is copied so bound updates stay
// local to the entry; a nil format is replaced by an unbounded one.
func NewEntry(name string, kind Kind, format *Format, opts ...EntryOption) *Entry {
	format = format.clone()
	e := &Entry{
		name:   name,
		kind:   kind,
		format: format,
		value:  format.Default,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *Entry) Name() string        { return e.name }
func (e *Entry) Kind() Kind          { return e.kind }
func (e *Entry) Value() string       { return e.value }
func (e *Entry) Format() *Format     { return e.format }
func (e *Entry) Description() string { return e.description }

// Key resolves the entry name against the editable key set.
func (e *Entry) Key() Key {
	return Resolve(e.name)
}

// DisplayName falls back to the name when no display name was configured.
func (e *Entry) DisplayName() string {
	if e.displayName == "" {
		return e.name
	}
	return e.displayName
}

// IsUpdateNotifier reports whether changes are forwarded to the container
// notifier.
func (e *Entry) IsUpdateNotifier() bool {
	return e.notifier
}

// SetUpdateNotifier toggles forwarding of changes.
func (e *Entry) SetUpdateNotifier(enabled bool) {
	e.notifier = enabled
}

// Container returns the owning container, or nil for a detached entry.
func (e *Entry) Container() *Container {
	return e.container
}

// SetValue stores text and reports whether the value changed. It neither
// validates against the bounds nor triggers dependency updates.
func (e *Entry) SetValue(text string) bool {
	if e.value == text {
		return false
	}
	e.value = text
	return true
}

// SetInt stores value in decimal notation.
func (e *Entry) SetInt(value int) bool {
	return e.SetValue(strconv.Itoa(value))
}

// SetFloat stores value using the format's decimals.
func (e *Entry) SetFloat(value float64) bool {
	return e.SetValue(e.format.formatFloat(value))
}

// Int parses the stored text as an integer.
func (e *Entry) Int() (int, error) {
	value, err := strconv.Atoi(e.value)
	if err != nil {
		return 0, &FormatError{Entry: e.name, Value: e.value, Kind: KindInteger, Err: err}
	}
	return value, nil
}

// Float parses the stored text as a floating point number.
func (e *Entry) Float() (float64, error) {
	value, err := strconv.ParseFloat(e.value, 64)
	if err != nil {
		return 0, &FormatError{Entry: e.name, Value: e.value, Kind: KindFloat, Err: err}
	}
	return value, nil
}

// Bool parses the stored text as a boolean.
func (e *Entry) Bool() (bool, error) {
	value, err := strconv.ParseBool(e.value)
	if err != nil {
		return false, &FormatError{Entry: e.name, Value: e.value, Kind: KindBoolean, Err: err}
	}
	return value, nil
}

// Bounds returns the current range; ok is false when none is set.
func (e *Entry) Bounds() (minimum, maximum float64, ok bool) {
	if !e.format.Bounded() {
		return math.Inf(-1), math.Inf(1), false
	}
	return e.format.Minimum, e.format.Maximum, true
}

// SetBounds replaces both bounds. The current value is not clamped.
func (e *Entry) SetBounds(minimum, maximum float64) error {
	minimum = e.format.round(minimum)
	maximum = e.format.round(maximum)
	if maximum < minimum {
		return &BoundsError{Entry: e.name, Minimum: minimum, Maximum: maximum}
	}
	e.format.Minimum = minimum
	e.format.Maximum = maximum
	e.format.bounded = true
	return nil
}

// SetMaximum replaces the upper bound, keeping the lower one.
func (e *Entry) SetMaximum(maximum float64) error {
	minimum, _, _ := e.Bounds()
	return e.SetBounds(minimum, maximum)
}

// SetMinimum replaces the lower bound, keeping the upper one.
func (e *Entry) SetMinimum(minimum float64) error {
	_, maximum, _ := e.Bounds()
	return e.SetBounds(minimum, maximum)
}

// InBounds reports whether the value lies inside the range. Unbounded and
// non-numeric entries are always in bounds.
func (e *Entry) InBounds() (bool, error) {
	if !e.kind.Numeric() || !e.format.Bounded() {
		return true, nil
	}
	var value float64
	switch e.kind {
	case KindInteger:
		n, err := e.Int()
		if err != nil {
			return false, err
		}
		value = float64(n)
	default:
		f, err := e.Float()
		if err != nil {
			return false, err
		}
		value = f
	}
	return e.format.contains(value), nil
}

// NotifyDependents forwards a change of this entry to the container notifier.
// Detached entries and entries that are not update notifiers are ignored.
func (e *Entry) NotifyDependents() error {
	if e == nil || !e.notifier || e.container == nil {
		return nil
	}
	return e.container.notify(e)
}
