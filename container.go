package prefs

import "fmt"

// Notifier receives entries whose value has just changed.
type Notifier interface {
	NotifyChanged(source *Entry) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(source *Entry) error

// NotifyChanged implements Notifier.
func (f NotifierFunc) NotifyChanged(source *Entry) error {
	if f == nil {
		return nil
	}
	return f(source)
}

// Container owns the entries of one preference set. Entries are unique by
// name and keep their insertion order. Containers perform no locking; callers
// that edit from several goroutines must serialize access themselves.
type Container struct {
	entries  []*Entry
	index    map[string]int
	notifier Notifier
}

// ContainerOption configures a Container on creation.
type ContainerOption func(*Container)

// WithNotifier wires the notifier that runs when an update-notifier entry
// changes through Container.Set or Entry.NotifyDependents.
func WithNotifier(notifier Notifier) ContainerOption {
	return func(c *Container) {
		c.notifier = notifier
	}
}

// NewContainer constructs an empty container.
func NewContainer(opts ...ContainerOption) *Container {
	c := &Container{index: map[string]int{}}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Add attaches entries in order. It stops at the first nil or duplicate entry;
// entries added before that point stay attached. A nil container rejects
// every entry.
func (c *Container) Add(entries ...*Entry) error {
	if c == nil {
		return ErrNilContainer
	}
	for _, entry := range entries {
		if entry == nil {
			return ErrNilEntry
		}
		if _, exists := c.index[entry.name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.name)
		}
		entry.container = c
		c.index[entry.name] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
	return nil
}

// Get returns the entry stored under name. Absence is not an error.
func (c *Container) Get(name string) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	pos, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[pos], true
}

// Lookup returns the entry stored under the key's persisted name.
func (c *Container) Lookup(key Key) (*Entry, bool) {
	if !key.Defined() {
		return nil, false
	}
	return c.Get(key.String())
}

// Set stores text on the named entry. When the value changed and the entry is
// an update notifier, the notifier runs before Set returns and its error is
// returned unchanged; the new value is not rolled back. Set reports false for
// an absent name.
func (c *Container) Set(name, text string) (bool, error) {
	entry, ok := c.Get(name)
	if !ok {
		return false, nil
	}
	if !entry.SetValue(text) {
		return true, nil
	}
	return true, entry.NotifyDependents()
}

// Remove detaches the named entry.
func (c *Container) Remove(name string) bool {
	if c == nil {
		return false
	}
	pos, ok := c.index[name]
	if !ok {
		return false
	}
	c.entries[pos].container = nil
	c.entries = append(c.entries[:pos], c.entries[pos+1:]...)
	delete(c.index, name)
	for i := pos; i < len(c.entries); i++ {
		c.index[c.entries[i].name] = i
	}
	return true
}

// Len returns the number of entries.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the entries in insertion order. The slice is a copy; the
// entries are shared.
func (c *Container) Entries() []*Entry {
	if c == nil || len(c.entries) == 0 {
		return nil
	}
	return append([]*Entry(nil), c.entries...)
}

// Names returns entry names in insertion order.
func (c *Container) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.entries))
	for i, entry := range c.entries {
		names[i] = entry.name
	}
	return names
}

// Values snapshots the current text values keyed by entry name.
func (c *Container) Values() map[string]string {
	if c == nil {
		return nil
	}
	out := make(map[string]string, len(c.entries))
	for _, entry := range c.entries {
		out[entry.name] = entry.value
	}
	return out
}

// Apply restores values without running the notifier and returns the names
// that have no matching entry, in no particular order.
func (c *Container) Apply(values map[string]string) []string {
	var unknown []string
	for name, text := range values {
		entry, ok := c.Get(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		entry.SetValue(text)
	}
	return unknown
}

// Refresh notifies every update-notifier entry once, in insertion order, so
// dependents match values restored through Apply. It stops at the first error.
func (c *Container) Refresh() error {
	if c == nil {
		return nil
	}
	for _, entry := range c.Entries() {
		if err := entry.NotifyDependents(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) notify(source *Entry) error {
	if c.notifier == nil {
		return nil
	}
	return c.notifier.NotifyChanged(source)
}
