package permission

import (
	"context"
	"strings"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
)

// alwaysVisible are computed or system keys of a serialized Work. They are
// never gated since they are not independently writable.
var alwaysVisible = map[string]struct{}{
	"id":                   {},
	"created":              {},
	"updated":              {},
	"status_code":          {},
	"status_text":          {},
	"status_color":         {},
	"category_detail":      {},
	"type_detail":          {},
	"sales_channel_detail": {},
	"category_name":        {},
	"type_name":            {},
	"sales_channel_name":   {},
}

// projections are serialized keys that expose a user reference and are
// readable exactly when the owning field is.
var projections = map[string]model.FieldName{
	"designer_detail":               model.FieldDesigner,
	"printing_controlled_by_detail": model.FieldPrintingControlledBy,
}

// systemKeys are skipped by the write check.
var systemKeys = map[string]struct{}{
	"id":      {},
	"created": {},
	"updated": {},
}

// IsAlwaysVisible reports whether key bypasses read filtering.
func IsAlwaysVisible(key string) bool {
	_, ok := alwaysVisible[key]
	return ok
}

// FilterReadable drops every key of record the user may not read. The
// record of a superuser is returned unchanged.
func (e *Effective) FilterReadable(record map[string]any) map[string]any {
	if e.Superuser {
		return record
	}
	out := make(map[string]any, len(record))
	for key, value := range record {
		if IsAlwaysVisible(key) {
			out[key] = value
			continue
		}
		if owner, ok := projections[key]; ok {
			if e.CanRead(owner) {
				out[key] = value
			}
			continue
		}
		if f := model.FieldName(key); f.Valid() && e.CanRead(f) {
			out[key] = value
		}
	}
	return out
}

// UnwritableFields returns the manageable fields among keys that the user
// may not write, in declaration order. Unknown and system keys are ignored.
func (e *Effective) UnwritableFields(keys []string) []model.FieldName {
	if e.Superuser {
		return nil
	}
	present := make(map[model.FieldName]struct{}, len(keys))
	for _, key := range keys {
		if _, skip := systemKeys[key]; skip {
			continue
		}
		if f := model.FieldName(key); f.Valid() {
			present[f] = struct{}{}
		}
	}
	var denied []model.FieldName
	for _, f := range model.ManageableFields() {
		if _, ok := present[f]; ok && !e.CanWrite(f) {
			denied = append(denied, f)
		}
	}
	return denied
}

// PayloadKeys lists the keys of a decoded JSON object.
func PayloadKeys[V any](payload map[string]V) []string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	return keys
}

// Guard binds a Resolver to a Translator so checks can report localized
// permission errors.
type Guard struct {
	resolver *Resolver
	tr       *locale.Translator
}

func NewGuard(resolver *Resolver, tr *locale.Translator) *Guard {
	return &Guard{resolver: resolver, tr: tr}
}

func (g *Guard) Resolve(ctx context.Context, p Principal) (*Effective, error) {
	return g.resolver.Resolve(ctx, p)
}

// FilterReadable redacts record for p.
func (g *Guard) FilterReadable(ctx context.Context, p Principal, record map[string]any) (map[string]any, error) {
	if p != nil && p.IsSuperUser() {
		return record, nil
	}
	eff, err := g.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return eff.FilterReadable(record), nil
}

// ValidateWritable rejects keys that name fields p may not write.
func (g *Guard) ValidateWritable(ctx context.Context, p Principal, keys []string) error {
	if p != nil && p.IsSuperUser() {
		return nil
	}
	eff, err := g.resolver.Resolve(ctx, p)
	if err != nil {
		return err
	}
	return g.CheckWritable(eff, keys)
}

// CheckWritable is ValidateWritable against an already resolved set. The
// error names every offending field by its label.
func (g *Guard) CheckWritable(eff *Effective, keys []string) error {
	denied := eff.UnwritableFields(keys)
	if len(denied) == 0 {
		return nil
	}
	labels := make([]string, 0, len(denied))
	for _, f := range denied {
		labels = append(labels, g.tr.FieldLabel(f))
	}
	return apperror.Forbidden(g.tr.T(locale.ErrWriteDenied, strings.Join(labels, ", ")))
}

func (g *Guard) CanCreate(ctx context.Context, p Principal) (bool, error) {
	return g.can(ctx, p, model.CapabilityWorkCreate)
}

func (g *Guard) CanDelete(ctx context.Context, p Principal) (bool, error) {
	return g.can(ctx, p, model.CapabilityWorkDelete)
}

// CanWriteField reports whether p holds write on f.
func (g *Guard) CanWriteField(ctx context.Context, p Principal, f model.FieldName) (bool, error) {
	if p != nil && p.IsSuperUser() {
		return true, nil
	}
	eff, err := g.resolver.Resolve(ctx, p)
	if err != nil {
		return false, err
	}
	return eff.CanWrite(f), nil
}

func (g *Guard) can(ctx context.Context, p Principal, c model.Capability) (bool, error) {
	if p != nil && p.IsSuperUser() {
		return true, nil
	}
	eff, err := g.resolver.Resolve(ctx, p)
	if err != nil {
		return false, err
	}
	return eff.Can(c), nil
}
