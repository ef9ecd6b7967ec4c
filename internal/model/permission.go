package model

// Level is the access a role grants on a single Work field.
// Levels are totally ordered: none < read < write.
type Level string

const (
	LevelNone  Level = "none"
	LevelRead  Level = "read"
	LevelWrite Level = "write"
)

// Levels lists every level in ascending order.
var Levels = []Level{LevelNone, LevelRead, LevelWrite}

func (l Level) rank() int {
	switch l {
	case LevelRead:
		return 1
	case LevelWrite:
		return 2
	default:
		return 0
	}
}

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	return l == LevelNone || l == LevelRead || l == LevelWrite
}

// AtLeast reports whether l grants at least as much as other.
func (l Level) AtLeast(other Level) bool {
	return l.rank() >= other.rank()
}

// MaxLevel returns the stronger of two levels. Unknown values count as none.
func MaxLevel(a, b Level) Level {
	if b.rank() > a.rank() {
		return b
	}
	if a.rank() == 0 {
		return LevelNone
	}
	return a
}

// FieldName identifies a manageable field of Work.
type FieldName string

const (
	FieldWorkName             FieldName = "name"
	FieldCategory             FieldName = "category"
	FieldPrice                FieldName = "price"
	FieldType                 FieldName = "type"
	FieldSalesChannel         FieldName = "sales_channel"
	FieldDesigner             FieldName = "designer"
	FieldDesignStartDate      FieldName = "design_start_date"
	FieldDesignEndDate        FieldName = "design_end_date"
	FieldConfirmDate          FieldName = "confirm_date"
	FieldPrintingLocation     FieldName = "printing_location"
	FieldPrintingConfirm      FieldName = "printing_confirm"
	FieldPrintingStartDate    FieldName = "printing_start_date"
	FieldPrintingEndDate      FieldName = "printing_end_date"
	FieldPrintingControl      FieldName = "printing_control"
	FieldPrintingControlledBy FieldName = "printing_controlled_by"
	FieldPrintingControlDate  FieldName = "printing_control_date"
	FieldMixed                FieldName = "mixed"
	FieldPackagingDate        FieldName = "packaging_date"
	FieldStockEntry           FieldName = "stock_entry"
	FieldShippingDate         FieldName = "shipping_date"
	FieldLinks                FieldName = "links"
	FieldNote                 FieldName = "note"
)

// manageableFields is the closed set of Work fields that carry per-role
// permissions, in declaration order. Snapshots, validation and seeding all
// iterate this list.
var manageableFields = []FieldName{
	FieldWorkName,
	FieldCategory,
	FieldPrice,
	FieldType,
	FieldSalesChannel,
	FieldDesigner,
	FieldDesignStartDate,
	FieldDesignEndDate,
	FieldConfirmDate,
	FieldPrintingLocation,
	FieldPrintingConfirm,
	FieldPrintingStartDate,
	FieldPrintingEndDate,
	FieldPrintingControl,
	FieldPrintingControlledBy,
	FieldPrintingControlDate,
	FieldMixed,
	FieldPackagingDate,
	FieldStockEntry,
	FieldShippingDate,
	FieldLinks,
	FieldNote,
}

var manageableIndex = func() map[FieldName]struct{} {
	idx := make(map[FieldName]struct{}, len(manageableFields))
	for _, f := range manageableFields {
		idx[f] = struct{}{}
	}
	return idx
}()

// ManageableFields returns a copy of the manageable field enumeration.
func ManageableFields() []FieldName {
	out := make([]FieldName, len(manageableFields))
	copy(out, manageableFields)
	return out
}

// Valid reports whether f belongs to the manageable field enumeration.
func (f FieldName) Valid() bool {
	_, ok := manageableIndex[f]
	return ok
}

// Capability is a named system-level privilege not tied to a field.
type Capability string

const (
	CapabilityWorkCreate Capability = "work_create"
	CapabilityWorkDelete Capability = "work_delete"
)

var capabilities = []Capability{CapabilityWorkCreate, CapabilityWorkDelete}

// Capabilities returns a copy of the capability enumeration.
func Capabilities() []Capability {
	out := make([]Capability, len(capabilities))
	copy(out, capabilities)
	return out
}

// Valid reports whether c belongs to the capability enumeration.
func (c Capability) Valid() bool {
	for _, known := range capabilities {
		if c == known {
			return true
		}
	}
	return false
}
