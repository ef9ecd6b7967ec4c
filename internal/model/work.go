package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Work is the tracked business record whose fields are access controlled
// and whose changes are audited.
type Work struct {
	ID                     uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name                   string              `gorm:"type:varchar(200);not null"`
	CategoryID             *uuid.UUID          `gorm:"type:uuid;index"`
	Category               *Category           `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Price                  decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	TypeID                 *uuid.UUID          `gorm:"type:uuid;index"`
	Type                   *WorkType           `gorm:"foreignKey:TypeID;constraint:OnDelete:SET NULL;"`
	SalesChannelID         *uuid.UUID          `gorm:"type:uuid;index"`
	SalesChannel           *SalesChannel       `gorm:"foreignKey:SalesChannelID;constraint:OnDelete:SET NULL;"`
	DesignerID             *uuid.UUID          `gorm:"type:uuid;index"`
	Designer               *User               `gorm:"foreignKey:DesignerID;constraint:OnDelete:SET NULL;"`
	DesignStartDate        *time.Time          `gorm:"type:date"`
	DesignEndDate          *time.Time          `gorm:"type:date"`
	ConfirmDate            *time.Time          `gorm:"type:date"`
	PrintingLocation       *string             `gorm:"type:varchar(100)"`
	PrintingConfirm        bool                `gorm:"not null;default:false"`
	PrintingStartDate      *time.Time          `gorm:"type:date"`
	PrintingEndDate        *time.Time          `gorm:"type:date"`
	PrintingControl        bool                `gorm:"not null;default:false"`
	PrintingControlledByID *uuid.UUID          `gorm:"type:uuid;index"`
	PrintingControlledBy   *User               `gorm:"foreignKey:PrintingControlledByID;constraint:OnDelete:SET NULL;"`
	PrintingControlDate    *time.Time
	Mixed                  bool       `gorm:"not null;default:false"`
	PackagingDate          *time.Time `gorm:"type:date"`
	StockEntry             bool       `gorm:"not null;default:false"`
	ShippingDate           *time.Time `gorm:"type:date"`
	Links                  Links      `gorm:"type:jsonb;not null;default:'[]';serializer:json"`
	Note                   *string    `gorm:"type:text"`
	CreatedAt              time.Time  `gorm:"index"`
	UpdatedAt              time.Time
}

func (w *Work) GetID() uuid.UUID { return w.ID }

func (w *Work) DisplayName() string { return w.Name }

// StatusCode is the derived lifecycle state of a Work. It is never stored.
type StatusCode string

const (
	StatusWaiting   StatusCode = "waiting"
	StatusPrinting  StatusCode = "printing"
	StatusCompleted StatusCode = "completed"
)

// Color is the badge color the front end renders for the status.
func (s StatusCode) Color() string {
	switch s {
	case StatusCompleted:
		return "#dc3545"
	case StatusPrinting:
		return "#28a745"
	default:
		return "#6c757d"
	}
}

// Status derives the state from stock_entry and printing_confirm:
// stock entry wins over printing confirmation.
func (w *Work) Status() StatusCode {
	switch {
	case w.StockEntry:
		return StatusCompleted
	case w.PrintingConfirm:
		return StatusPrinting
	default:
		return StatusWaiting
	}
}

// Link is one entry of the ordered link list stored on a Work.
type Link struct {
	URL         string     `json:"url"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	AddedBy     string     `json:"added_by,omitempty"`
	AddedAt     *time.Time `json:"added_at,omitempty"`
}

// Links is stored as a JSON array and mutated only as a whole.
type Links []Link

// String renders the list as compact JSON; audit snapshots use it.
func (l Links) String() string {
	if l == nil {
		l = Links{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Without returns a copy of l with every entry pointing at url removed,
// and the number of entries removed.
func (l Links) Without(url string) (Links, int) {
	out := make(Links, 0, len(l))
	for _, link := range l {
		if link.URL != url {
			out = append(out, link)
		}
	}
	return out, len(l) - len(out)
}
