package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"wm-backend/internal/locale"
)

// Snapshot maps field keys to comparable values. Values are nil, Ref,
// Date, time.Time, bool, string, fmt.Stringer or any other value with a
// meaningful fmt.Sprint form.
type Snapshot map[string]any

// Ref is a reference to another entity captured in a snapshot.
type Ref struct {
	ID      uuid.UUID
	Display string
}

// Date is a calendar date without a time component.
type Date time.Time

func (d Date) String() string {
	return time.Time(d).Format(time.DateOnly)
}

// normalize turns typed nil pointers into untyped nil and dereferences the
// pointer forms snapshots are commonly built from.
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *Ref:
		if val == nil {
			return nil
		}
		return *val
	case *Date:
		if val == nil {
			return nil
		}
		return *val
	case *time.Time:
		if val == nil {
			return nil
		}
		return *val
	case *string:
		if val == nil {
			return nil
		}
		return *val
	default:
		return v
	}
}

// serialize renders a value for the structured changes column.
func serialize(v any) any {
	switch val := normalize(v).(type) {
	case nil:
		return nil
	case Ref:
		return map[string]any{"id": val.ID.String(), "display": val.Display}
	case Date:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// display renders a value for the human readable description.
func display(tr *locale.Translator, v any) string {
	switch val := normalize(v).(type) {
	case nil:
		return tr.T(locale.ValueEmpty)
	case Ref:
		return val.Display
	case bool:
		return tr.YesNo(val)
	case Date:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

// equal compares two snapshot values. References compare by id.
func equal(a, b any) bool {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ra, ok := a.(Ref); ok {
		rb, ok := b.(Ref)
		return ok && ra.ID == rb.ID
	}
	if _, ok := b.(Ref); ok {
		return false
	}
	return fmt.Sprintf("%T|%v", a, serialize(a)) == fmt.Sprintf("%T|%v", b, serialize(b))
}
