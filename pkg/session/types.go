package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	prefs "github.com/goliatone/go-preferences"
	"github.com/goliatone/go-preferences/pkg/activity"
	"github.com/google/uuid"
)

var ErrETagMismatch = errors.New("session: etag mismatch")

// ErrActivity marks a snapshot that was saved but whose activity event failed.
var ErrActivity = errors.New("session: activity hook failed")

// Snapshot holds entry values keyed by persisted entry name.
type Snapshot map[string]string

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Ref identifies one persisted snapshot for one preference domain.
type Ref struct {
	Domain string
	Scope  string
	ID     string
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one snapshot for a single reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (snapshot Snapshot, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot Snapshot, meta Meta) (Meta, error)
}

func (r Ref) Identifier() (string, error) {
	if r.Domain == "" {
		return "", fmt.Errorf("missing domain")
	}
	switch r.Scope {
	case "system":
		return fmt.Sprintf("system/%s", r.Domain), nil
	case "tenant", "org", "team", "user":
		if r.ID == "" {
			return "", fmt.Errorf("missing id for scope %q", r.Scope)
		}
		return fmt.Sprintf("%s/%s/%s", r.Scope, r.ID, r.Domain), nil
	default:
		return "", fmt.Errorf("unsupported scope name %q", r.Scope)
	}
}

// Session moves container values in and out of a Store.
type Session struct {
	Store   Store
	Emitter *activity.Emitter
	// Now stamps Meta.UpdatedAt; defaults to time.Now.
	Now func() time.Time
}

// RestoreResult reports what Restore found.
type RestoreResult struct {
	Meta    Meta
	Found   bool
	Unknown []string
}

// Restore loads the snapshot for ref into container. A missing snapshot leaves
// the container untouched. Stored names without a matching entry are returned
// in Unknown, in no particular order.
func (s Session) Restore(ctx context.Context, ref Ref, container *prefs.Container) (RestoreResult, error) {
	if s.Store == nil {
		return RestoreResult{}, fmt.Errorf("session: store is required")
	}
	if container == nil {
		return RestoreResult{}, fmt.Errorf("session: container is required")
	}

	snapshot, meta, ok, err := s.Store.Load(ctx, ref)
	if err != nil {
		return RestoreResult{}, fmt.Errorf("session: load %q for scope %q: %w", ref.Domain, ref.Scope, err)
	}
	if !ok {
		return RestoreResult{}, nil
	}

	result := RestoreResult{
		Meta:    meta,
		Found:   true,
		Unknown: container.Apply(snapshot),
	}
	if err := container.Refresh(); err != nil {
		return result, fmt.Errorf("session: refresh %q: %w", ref.Domain, err)
	}
	return result, nil
}

// Persist saves the container values for ref. When meta.ETag is set it must
// match the stored ETag. Every save gets a fresh ETag; SnapshotID is kept from
// meta when given, otherwise generated.
func (s Session) Persist(ctx context.Context, ref Ref, container *prefs.Container, meta Meta) (Meta, error) {
	if s.Store == nil {
		return Meta{}, fmt.Errorf("session: store is required")
	}
	if container == nil {
		return Meta{}, fmt.Errorf("session: container is required")
	}

	_, loadedMeta, ok, err := s.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("session: load %q for scope %q: %w", ref.Domain, ref.Scope, err)
	}
	if !ok {
		loadedMeta = Meta{}
	}
	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	if meta.SnapshotID == "" {
		saveMeta.SnapshotID = uuid.NewString()
	}
	saveMeta.ETag = uuid.NewString()
	saveMeta.UpdatedAt = s.now()

	savedMeta, err := s.Store.Save(ctx, ref, Snapshot(container.Values()), saveMeta)
	if err != nil {
		return loadedMeta, fmt.Errorf("session: save %q for scope %q: %w", ref.Domain, ref.Scope, err)
	}

	if s.Emitter.Enabled() {
		profile, _ := ref.Identifier()
		event := activity.BuildSnapshotSavedEvent(activity.PreferenceEventInput{
			Profile:    profile,
			SnapshotID: savedMeta.SnapshotID,
			OccurredAt: savedMeta.UpdatedAt,
		})
		if err := s.Emitter.Emit(ctx, event); err != nil {
			return savedMeta, fmt.Errorf("%w: %w", ErrActivity, err)
		}
	}
	return savedMeta, nil
}

func (s Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
