package prefs

import "strconv"

// NewSlicerEntries builds the editable slicer preferences: the number of
// slices per view, which notifies on change, and the first slice index bounded
// by it. Initial values come from defaults when it provides them.
func NewSlicerEntries(defaults DefaultsProvider) []*Entry {
	slices := NewEntry(KeyNumberOfSlices.String(), KindInteger,
		NewFormat(
			WithBounds(MinimumNumberOfSlices, MaximumNumberOfSlices),
			WithDefault(strconv.Itoa(DefaultNumberOfSlices)),
		),
		WithDisplayName("Number of slices"),
		WithDescription("Number of slices per view."),
		AsUpdateNotifier(),
	)
	applyDefault(defaults, KeyNumberOfSlices, slices)

	count, err := slices.Int()
	if err != nil || count < MinimumNumberOfSlices {
		count = DefaultNumberOfSlices
	}
	first := NewEntry(KeyFirstSliceIndex.String(), KindInteger,
		NewFormat(
			WithBounds(0, float64(count-1)),
			WithDefault(strconv.Itoa(DefaultFirstSliceIndex)),
		),
		WithDisplayName("First slice index"),
		WithDescription("Index of the first slice shown in the view."),
	)
	applyDefault(defaults, KeyFirstSliceIndex, first)

	return []*Entry{slices, first}
}

func applyDefault(defaults DefaultsProvider, key Key, entry *Entry) {
	if defaults == nil {
		return
	}
	if value, ok := defaults.DefaultValue(key); ok {
		entry.SetValue(value)
	}
}
