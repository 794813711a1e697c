// Package session persists the values of a preference container between
// application sessions.
//
// A Store only loads and saves one Snapshot for one Ref; the file format is
// owned by the Store implementation. Session sits between a Store and a
// prefs.Container:
//
//	Store.Load -> Container.Apply -> Container.Refresh
//	Container.Values -> Store.Save
//
// Restore applies stored values without triggering dependency updates per
// value, then refreshes every update-notifier entry once so dependent bounds
// match the restored sources.
//
// Deterministic keys:
//
//	Ref.Identifier() yields `system/<domain>` or `<scope>/<id>/<domain>` for the
//	tenant, org, team and user scopes.
package session
