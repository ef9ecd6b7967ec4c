package service

import (
	"context"
	"fmt"
	"time"

	"wm-backend/internal/locale"
	"wm-backend/internal/model"
	"wm-backend/internal/repository"

	"github.com/google/uuid"
)

type MovementResponse struct {
	ID            uuid.UUID      `json:"id"`
	User          *uuid.UUID     `json:"user"`
	UserFullName  string         `json:"user_fullname"`
	UserDisplay   string         `json:"user_display"`
	Work          *uuid.UUID     `json:"work"`
	WorkName      string         `json:"work_name"`
	WorkDisplay   string         `json:"work_display"`
	Action        model.Action   `json:"action"`
	ActionDisplay string         `json:"action_display"`
	Description   string         `json:"description"`
	Changes       *model.Changes `json:"changes"`
	CreatedAt     string         `json:"created"`
}

// MovementQuery carries the optional list filters as received.
type MovementQuery struct {
	Action string
	WorkID string
	Page   int
	Limit  int
}

type MovementService interface {
	ListMovements(ctx context.Context, q MovementQuery) ([]MovementResponse, int64, error)
	GetMovement(ctx context.Context, id string) (*MovementResponse, error)
}

type movementService struct {
	repo repository.MovementRepository
	tr   *locale.Translator
}

// NewMovementService creates a new MovementService instance
func NewMovementService(repo repository.MovementRepository, tr *locale.Translator) MovementService {
	return &movementService{repo: repo, tr: tr}
}

// ListMovements returns movements newest first. Unknown action values and
// malformed work ids match nothing rather than everything.
func (s *movementService) ListMovements(ctx context.Context, q MovementQuery) ([]MovementResponse, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}

	var filter repository.MovementFilter
	if q.Action != "" {
		action := model.Action(q.Action)
		if !action.Valid() {
			return []MovementResponse{}, 0, nil
		}
		filter.Action = action
	}
	if q.WorkID != "" {
		workID, err := uuid.Parse(q.WorkID)
		if err != nil {
			return []MovementResponse{}, 0, nil
		}
		filter.WorkID = &workID
	}

	rows, total, err := s.repo.List(ctx, filter, offset(q.Page, q.Limit), q.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch movements: %w", err)
	}

	res := make([]MovementResponse, 0, len(rows))
	for i := range rows {
		res = append(res, s.toResponse(&rows[i]))
	}
	return res, total, nil
}

func (s *movementService) GetMovement(ctx context.Context, id string) (*MovementResponse, error) {
	msg := s.tr.T(locale.ErrMovementNotFound)
	movementID, err := parseID(id, msg)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(ctx, movementID)
	if err != nil {
		return nil, notFoundOr(err, msg, "failed to fetch movement")
	}
	res := s.toResponse(m)
	return &res, nil
}

func (s *movementService) toResponse(m *model.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		User:          m.UserID,
		UserFullName:  m.UserFullName,
		UserDisplay:   s.userDisplay(m),
		Work:          m.WorkID,
		WorkName:      m.WorkName,
		WorkDisplay:   workDisplay(m),
		Action:        m.Action,
		ActionDisplay: s.tr.ActionLabel(m.Action),
		Description:   m.Description,
		Changes:       m.Changes,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}

func (s *movementService) userDisplay(m *model.Movement) string {
	switch {
	case m.UserFullName != "":
		return m.UserFullName
	case m.User != nil:
		return m.User.Username
	default:
		return s.tr.T(locale.UnknownUser)
	}
}

func workDisplay(m *model.Movement) string {
	switch {
	case m.WorkName != "":
		return m.WorkName
	case m.WorkID != nil:
		return m.WorkID.String()
	default:
		return "-"
	}
}
