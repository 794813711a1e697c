package prefs

import "strconv"

// Slicer preference constants used by the built-in catalog and rule table.
const (
	MinimumNumberOfSlices  = 10
	MaximumNumberOfSlices  = 1000
	DefaultNumberOfSlices  = 100
	DefaultFirstSliceIndex = 0
)

// DefaultsProvider supplies the known-good value an entry is reset to when a
// dependency update drives it out of bounds.
type DefaultsProvider interface {
	DefaultValue(key Key) (string, bool)
}

// DefaultsFunc adapts a function to DefaultsProvider.
type DefaultsFunc func(key Key) (string, bool)

// DefaultValue implements DefaultsProvider.
func (f DefaultsFunc) DefaultValue(key Key) (string, bool) {
	if f == nil {
		return "", false
	}
	return f(key)
}

// Defaults is a fixed DefaultsProvider.
type Defaults map[Key]string

// DefaultValue implements DefaultsProvider.
func (d Defaults) DefaultValue(key Key) (string, bool) {
	value, ok := d[key]
	return value, ok
}

// SessionDefaults returns the session defaults of the slicer preferences.
func SessionDefaults() Defaults {
	return Defaults{
		KeyNumberOfSlices:  strconv.Itoa(DefaultNumberOfSlices),
		KeyFirstSliceIndex: strconv.Itoa(DefaultFirstSliceIndex),
	}
}

// resetValue prefers the provider and falls back to the entry's own default.
func resetValue(defaults DefaultsProvider, key Key, entry *Entry) string {
	if defaults != nil {
		if value, ok := defaults.DefaultValue(key); ok {
			return value
		}
	}
	return entry.format.Default
}
