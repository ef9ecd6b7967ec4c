package model

import (
	"time"

	"github.com/google/uuid"
)

// LookupBase holds the columns shared by the dropdown tables referenced
// from Work.
type LookupBase struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"created"`
}

func (b *LookupBase) Base() *LookupBase { return b }

func (b *LookupBase) GetID() uuid.UUID { return b.ID }

func (b *LookupBase) DisplayName() string { return b.Name }

type Category struct {
	LookupBase
}

type WorkType struct {
	LookupBase
}

type SalesChannel struct {
	LookupBase
}
