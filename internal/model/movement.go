package model

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of mutation a Movement records.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) Valid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// Movement is an immutable audit row. The actor and subject references are
// nulled when their targets are deleted; the denormalized names survive.
type Movement struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user"`
	User         *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL;" json:"-"`
	UserFullName string     `gorm:"type:varchar(200)" json:"user_fullname"`
	WorkID       *uuid.UUID `gorm:"type:uuid;index" json:"work"`
	Work         *Work      `gorm:"foreignKey:WorkID;constraint:OnDelete:SET NULL;" json:"-"`
	WorkName     string     `gorm:"type:varchar(200)" json:"work_name"`
	Action       Action     `gorm:"type:varchar(20);not null;index" json:"action"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Changes      *Changes   `gorm:"type:jsonb;serializer:json" json:"changes"`
	CreatedAt    time.Time  `gorm:"index" json:"created"`
}

// Changes holds the before/after values of the fields that changed.
type Changes struct {
	Old map[string]any `json:"old"`
	New map[string]any `json:"new"`
}
