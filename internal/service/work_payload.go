package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkPayload is a decoded JSON object of a create or update request. Keys
// stay raw so each field can be decoded and reported on its own.
type WorkPayload map[string]json.RawMessage

func (p WorkPayload) has(f model.FieldName) (json.RawMessage, bool) {
	raw, ok := p[string(f)]
	return raw, ok
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// linkEntry is one element of a whole-list links write.
type linkEntry struct {
	URL         *string    `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AddedBy     string     `json:"added_by"`
	AddedAt     *time.Time `json:"added_at"`
}

// applyPayload decodes every manageable key of p onto w. Decoding problems
// are collected on verr; the caller decides whether to persist.
func (s *workService) applyPayload(ctx context.Context, w *model.Work, p WorkPayload, verr *apperror.ValidationError) error {
	for _, f := range model.ManageableFields() {
		raw, ok := p.has(f)
		if !ok {
			continue
		}
		key := string(f)
		switch f {
		case model.FieldWorkName:
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				verr.Add(key, s.tr.T(locale.ErrInvalidValue))
				continue
			}
			if strings.TrimSpace(name) == "" {
				verr.Add(key, s.tr.T(locale.ErrRequired))
				continue
			}
			w.Name = strings.TrimSpace(name)

		case model.FieldCategory:
			id, err := s.lookupRef(ctx, raw, func(ctx context.Context, id uuid.UUID) error {
				_, err := s.categories.FindActiveByID(ctx, id)
				return err
			})
			if err != nil {
				if reportable(err) {
					verr.Add(key, err.Error())
					continue
				}
				return err
			}
			w.CategoryID, w.Category = id, nil

		case model.FieldType:
			id, err := s.lookupRef(ctx, raw, func(ctx context.Context, id uuid.UUID) error {
				_, err := s.types.FindActiveByID(ctx, id)
				return err
			})
			if err != nil {
				if reportable(err) {
					verr.Add(key, err.Error())
					continue
				}
				return err
			}
			w.TypeID, w.Type = id, nil

		case model.FieldSalesChannel:
			id, err := s.lookupRef(ctx, raw, func(ctx context.Context, id uuid.UUID) error {
				_, err := s.channels.FindActiveByID(ctx, id)
				return err
			})
			if err != nil {
				if reportable(err) {
					verr.Add(key, err.Error())
					continue
				}
				return err
			}
			w.SalesChannelID, w.SalesChannel = id, nil

		case model.FieldDesigner, model.FieldPrintingControlledBy:
			id, err := s.userRef(ctx, raw)
			if err != nil {
				if reportable(err) {
					verr.Add(key, err.Error())
					continue
				}
				return err
			}
			if f == model.FieldDesigner {
				w.DesignerID, w.Designer = id, nil
			} else {
				w.PrintingControlledByID, w.PrintingControlledBy = id, nil
			}

		case model.FieldPrice:
			var price decimal.NullDecimal
			if err := json.Unmarshal(raw, &price); err != nil {
				verr.Add(key, s.tr.T(locale.ErrInvalidValue))
				continue
			}
			w.Price = price

		case model.FieldDesignStartDate, model.FieldDesignEndDate, model.FieldConfirmDate,
			model.FieldPrintingStartDate, model.FieldPrintingEndDate,
			model.FieldPackagingDate, model.FieldShippingDate:
			d, err := decodeDate(raw)
			if err != nil {
				verr.Add(key, s.tr.T(locale.ErrInvalidValue))
				continue
			}
			*dateField(w, f) = d

		case model.FieldPrintingLocation, model.FieldNote:
			str, err := decodeOptionalString(raw)
			if err != nil {
				verr.Add(key, s.tr.T(locale.ErrInvalidValue))
				continue
			}
			if f == model.FieldNote {
				w.Note = str
			} else {
				w.PrintingLocation = str
			}

		case model.FieldPrintingConfirm, model.FieldPrintingControl, model.FieldMixed, model.FieldStockEntry:
			var b bool
			if err := json.Unmarshal(raw, &b); err != nil || isNull(raw) {
				verr.Add(key, s.tr.T(locale.ErrInvalidValue))
				continue
			}
			*boolField(w, f) = b

		case model.FieldLinks:
			links, msgs := s.decodeLinks(raw)
			if len(msgs) > 0 {
				for _, m := range msgs {
					verr.Add(key, m)
				}
				continue
			}
			w.Links = links

		case model.FieldPrintingControlDate:
			// stamped by the system
		}
	}
	return nil
}

// fieldError is a decoding problem that belongs in a ValidationError.
type fieldError string

func (e fieldError) Error() string { return string(e) }

func reportable(err error) bool {
	var fe fieldError
	return errors.As(err, &fe)
}

func (s *workService) lookupRef(ctx context.Context, raw json.RawMessage, find func(context.Context, uuid.UUID) error) (*uuid.UUID, error) {
	id, err := decodeOptionalID(raw)
	if err != nil {
		return nil, fieldError(s.tr.T(locale.ErrInvalidValue))
	}
	if id == nil {
		return nil, nil
	}
	if err := find(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldError(s.tr.T(locale.ErrLookupMissing))
		}
		return nil, err
	}
	return id, nil
}

func (s *workService) userRef(ctx context.Context, raw json.RawMessage) (*uuid.UUID, error) {
	id, err := decodeOptionalID(raw)
	if err != nil {
		return nil, fieldError(s.tr.T(locale.ErrInvalidValue))
	}
	if id == nil {
		return nil, nil
	}
	if _, err := s.users.GetByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldError(s.tr.T(locale.ErrUserMissing))
		}
		return nil, err
	}
	return id, nil
}

// decodeLinks validates a whole-list links write. Messages are numbered
// from 1.
func (s *workService) decodeLinks(raw json.RawMessage) (model.Links, []string) {
	if isNull(raw) {
		return model.Links{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, []string{s.tr.T(locale.ErrInvalidValue)}
	}
	links := make(model.Links, 0, len(items))
	var msgs []string
	for i, item := range items {
		n := i + 1
		var entry linkEntry
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) || json.Unmarshal(item, &entry) != nil {
			msgs = append(msgs, s.tr.T(locale.ErrLinkEntryInvalid, n))
			continue
		}
		if entry.URL == nil || strings.TrimSpace(*entry.URL) == "" {
			msgs = append(msgs, s.tr.T(locale.ErrLinkEntryNoURL, n))
			continue
		}
		if !s.validURL(*entry.URL) {
			msgs = append(msgs, s.tr.T(locale.ErrLinkEntryBadURL, n))
			continue
		}
		links = append(links, model.Link{
			URL:         *entry.URL,
			Title:       entry.Title,
			Description: entry.Description,
			AddedBy:     entry.AddedBy,
			AddedAt:     entry.AddedAt,
		})
	}
	return links, msgs
}

func (s *workService) validURL(u string) bool {
	return s.validate.Var(u, "required,http_url") == nil
}

func decodeOptionalID(raw json.RawMessage) (*uuid.UUID, error) {
	if isNull(raw) {
		return nil, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil, err
	}
	if str == "" {
		return nil, nil
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func decodeDate(raw json.RawMessage) (*time.Time, error) {
	str, err := decodeOptionalString(raw)
	if err != nil || str == nil {
		return nil, err
	}
	d, err := time.Parse(time.DateOnly, *str)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// decodeOptionalString maps null and blank strings to nil.
func decodeOptionalString(raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil, err
	}
	if strings.TrimSpace(str) == "" {
		return nil, nil
	}
	return &str, nil
}

func dateField(w *model.Work, f model.FieldName) **time.Time {
	switch f {
	case model.FieldDesignStartDate:
		return &w.DesignStartDate
	case model.FieldDesignEndDate:
		return &w.DesignEndDate
	case model.FieldConfirmDate:
		return &w.ConfirmDate
	case model.FieldPrintingStartDate:
		return &w.PrintingStartDate
	case model.FieldPrintingEndDate:
		return &w.PrintingEndDate
	case model.FieldPackagingDate:
		return &w.PackagingDate
	default:
		return &w.ShippingDate
	}
}

func boolField(w *model.Work, f model.FieldName) *bool {
	switch f {
	case model.FieldPrintingConfirm:
		return &w.PrintingConfirm
	case model.FieldPrintingControl:
		return &w.PrintingControl
	case model.FieldMixed:
		return &w.Mixed
	default:
		return &w.StockEntry
	}
}
