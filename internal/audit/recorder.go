// Package audit diffs Work snapshots and persists Movement rows.
package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wm-backend/internal/locale"
	"wm-backend/internal/model"
)

// Store persists movements.
type Store interface {
	Create(ctx context.Context, m *model.Movement) error
}

// Publisher receives every persisted movement.
type Publisher interface {
	PublishMovement(m *model.Movement)
}

// Recorder writes one Movement per call. Record never fails the caller:
// errors are logged and swallowed.
type Recorder struct {
	store     Store
	tr        *locale.Translator
	log       *zap.SugaredLogger
	publisher Publisher
	now       func() time.Time
}

type Option func(*Recorder)

// WithPublisher forwards persisted movements to p.
func WithPublisher(p Publisher) Option {
	return func(r *Recorder) { r.publisher = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

func NewRecorder(store Store, tr *locale.Translator, log *zap.SugaredLogger, opts ...Option) *Recorder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Recorder{store: store, tr: tr, log: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record builds and stores the movement for action performed by actor on
// subject. before and after are only consulted for updates. It returns the
// stored movement, or nil when nothing was stored.
func (r *Recorder) Record(ctx context.Context, actor *model.User, subject *model.Work, action model.Action, before, after Snapshot) (m *model.Movement) {
	if actor == nil || actor.ID == uuid.Nil {
		r.log.Debugw("movement skipped: no authenticated actor", "action", action)
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorw("movement recording panicked", "action", action, "panic", rec)
			m = nil
		}
	}()

	m = &model.Movement{
		UserID:       &actor.ID,
		UserFullName: actor.DisplayName(),
		Action:       action,
		CreatedAt:    r.now(),
	}
	name := ""
	if subject != nil {
		name = subject.Name
		m.WorkName = subject.Name
		if action != model.ActionDelete && subject.ID != uuid.Nil {
			id := subject.ID
			m.WorkID = &id
		}
	}

	switch action {
	case model.ActionCreate:
		m.Description = r.tr.T(locale.MovementCreated, name)
	case model.ActionDelete:
		m.Description = r.tr.T(locale.MovementDeleted, name)
	case model.ActionUpdate:
		m.Description, m.Changes = r.describeUpdate(name, before, after)
	default:
		r.log.Warnw("movement skipped: unknown action", "action", action)
		return nil
	}

	if err := r.store.Create(ctx, m); err != nil {
		r.log.Warnw("movement not stored", "action", action, "work", name, "error", err)
		return nil
	}
	if r.publisher != nil {
		r.publisher.PublishMovement(m)
	}
	return m
}

// Diff returns the changed fields of before and after as serialized values,
// restricted to keys whose values differ. It returns nil when nothing
// changed.
func Diff(before, after Snapshot) *model.Changes {
	changes := &model.Changes{Old: map[string]any{}, New: map[string]any{}}
	for _, key := range orderedKeys(before, after) {
		if equal(before[key], after[key]) {
			continue
		}
		changes.Old[key] = serialize(before[key])
		changes.New[key] = serialize(after[key])
	}
	if len(changes.Old) == 0 {
		return nil
	}
	return changes
}

func (r *Recorder) describeUpdate(name string, before, after Snapshot) (string, *model.Changes) {
	changes := Diff(before, after)
	if changes == nil {
		return r.tr.T(locale.MovementUpdated, name), nil
	}
	phrases := make([]string, 0, len(changes.Old))
	for _, key := range orderedKeys(before, after) {
		if _, changed := changes.Old[key]; !changed {
			continue
		}
		phrases = append(phrases, r.phrase(key, before[key], after[key]))
	}
	return r.tr.T(locale.MovementUpdatedChanges, name, strings.Join(phrases, ", ")), changes
}

// phrase renders "<label>: <old> → <new>". A failure while rendering falls
// back to the raw key and plain values.
func (r *Recorder) phrase(key string, oldVal, newVal any) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warnw("change phrase degraded", "field", key, "panic", rec)
			out = fmt.Sprintf("%s: %v → %v", key, oldVal, newVal)
		}
	}()
	label := key
	if l, ok := r.tr.LookupFieldLabel(model.FieldName(key)); ok {
		label = l
	}
	return r.tr.T(locale.ChangePhrase, label, display(r.tr, oldVal), display(r.tr, newVal))
}

// orderedKeys lists the union of keys, manageable fields first in
// declaration order, then the rest alphabetically.
func orderedKeys(before, after Snapshot) []string {
	seen := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		seen[k] = struct{}{}
	}
	for k := range after {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for _, f := range model.ManageableFields() {
		if _, ok := seen[string(f)]; ok {
			keys = append(keys, string(f))
			delete(seen, string(f))
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
