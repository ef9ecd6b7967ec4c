package service

import (
	"time"

	"wm-backend/internal/audit"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// workRecord renders w as the JSON object clients receive, before read
// filtering.
func workRecord(tr *locale.Translator, w *model.Work) map[string]any {
	status := w.Status()
	links := w.Links
	if links == nil {
		links = model.Links{}
	}
	return map[string]any{
		"id":                            w.ID,
		"name":                          w.Name,
		"category":                      w.CategoryID,
		"category_detail":               lookupDetail(w.CategoryID, lookupName(w.Category)),
		"category_name":                 nullableName(w.CategoryID, lookupName(w.Category)),
		"price":                         priceValue(w.Price),
		"type":                          w.TypeID,
		"type_detail":                   lookupDetail(w.TypeID, lookupName(w.Type)),
		"type_name":                     nullableName(w.TypeID, lookupName(w.Type)),
		"sales_channel":                 w.SalesChannelID,
		"sales_channel_detail":          lookupDetail(w.SalesChannelID, lookupName(w.SalesChannel)),
		"sales_channel_name":            nullableName(w.SalesChannelID, lookupName(w.SalesChannel)),
		"designer":                      w.DesignerID,
		"designer_detail":               userDetail(w.Designer),
		"design_start_date":             dateValue(w.DesignStartDate),
		"design_end_date":               dateValue(w.DesignEndDate),
		"confirm_date":                  dateValue(w.ConfirmDate),
		"printing_location":             w.PrintingLocation,
		"printing_confirm":              w.PrintingConfirm,
		"printing_start_date":           dateValue(w.PrintingStartDate),
		"printing_end_date":             dateValue(w.PrintingEndDate),
		"printing_control":              w.PrintingControl,
		"printing_controlled_by":        w.PrintingControlledByID,
		"printing_controlled_by_detail": userDetail(w.PrintingControlledBy),
		"printing_control_date":         timestampValue(w.PrintingControlDate),
		"mixed":                         w.Mixed,
		"packaging_date":                dateValue(w.PackagingDate),
		"stock_entry":                   w.StockEntry,
		"shipping_date":                 dateValue(w.ShippingDate),
		"links":                         links,
		"note":                          w.Note,
		"created":                       w.CreatedAt.Format(time.RFC3339),
		"updated":                       w.UpdatedAt.Format(time.RFC3339),
		"status_code":                   status,
		"status_text":                   tr.StatusText(status),
		"status_color":                  status.Color(),
	}
}

// workSnapshot captures every manageable field of w for auditing.
func workSnapshot(w *model.Work) audit.Snapshot {
	return audit.Snapshot{
		string(model.FieldWorkName):             w.Name,
		string(model.FieldCategory):             lookupRef(w.CategoryID, lookupName(w.Category)),
		string(model.FieldPrice):                priceValue(w.Price),
		string(model.FieldType):                 lookupRef(w.TypeID, lookupName(w.Type)),
		string(model.FieldSalesChannel):         lookupRef(w.SalesChannelID, lookupName(w.SalesChannel)),
		string(model.FieldDesigner):             userRef(w.DesignerID, w.Designer),
		string(model.FieldDesignStartDate):      dateRef(w.DesignStartDate),
		string(model.FieldDesignEndDate):        dateRef(w.DesignEndDate),
		string(model.FieldConfirmDate):          dateRef(w.ConfirmDate),
		string(model.FieldPrintingLocation):     w.PrintingLocation,
		string(model.FieldPrintingConfirm):      w.PrintingConfirm,
		string(model.FieldPrintingStartDate):    dateRef(w.PrintingStartDate),
		string(model.FieldPrintingEndDate):      dateRef(w.PrintingEndDate),
		string(model.FieldPrintingControl):      w.PrintingControl,
		string(model.FieldPrintingControlledBy): userRef(w.PrintingControlledByID, w.PrintingControlledBy),
		string(model.FieldPrintingControlDate):  w.PrintingControlDate,
		string(model.FieldMixed):                w.Mixed,
		string(model.FieldPackagingDate):        dateRef(w.PackagingDate),
		string(model.FieldStockEntry):           w.StockEntry,
		string(model.FieldShippingDate):         dateRef(w.ShippingDate),
		string(model.FieldLinks):                w.Links,
		string(model.FieldNote):                 w.Note,
	}
}

type lookupNamer interface {
	DisplayName() string
}

func lookupName[T any, P interface {
	*T
	lookupNamer
}](item P) string {
	if item == nil {
		return ""
	}
	return item.DisplayName()
}

func lookupDetail(id *uuid.UUID, name string) any {
	if id == nil {
		return nil
	}
	return map[string]any{"id": *id, "name": name}
}

func nullableName(id *uuid.UUID, name string) any {
	if id == nil {
		return nil
	}
	return name
}

func userDetail(u *model.User) any {
	if u == nil {
		return nil
	}
	return UserSummary{ID: u.ID, Username: u.Username, FullName: u.DisplayName()}
}

func lookupRef(id *uuid.UUID, name string) any {
	if id == nil {
		return nil
	}
	if name == "" {
		name = id.String()
	}
	return audit.Ref{ID: *id, Display: name}
}

func userRef(id *uuid.UUID, u *model.User) any {
	if id == nil {
		return nil
	}
	display := id.String()
	if u != nil {
		display = u.DisplayName()
	}
	return audit.Ref{ID: *id, Display: display}
}

func priceValue(p decimal.NullDecimal) any {
	if !p.Valid {
		return nil
	}
	return p.Decimal.StringFixed(2)
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.DateOnly)
}

func dateRef(t *time.Time) any {
	if t == nil {
		return nil
	}
	return audit.Date(*t)
}

func timestampValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
