package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
	"wm-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignRoleRequest struct {
	UserID string `json:"user" binding:"required"`
	RoleID string `json:"role" binding:"required"`
}

type AssignmentResponse struct {
	ID               uuid.UUID     `json:"id"`
	User             uuid.UUID     `json:"user"`
	UserDetail       *UserSummary  `json:"user_detail"`
	Role             uuid.UUID     `json:"role"`
	RoleDetail       *RoleResponse `json:"role_detail"`
	AssignedByDetail *UserSummary  `json:"assigned_by_detail"`
	AssignedAt       string        `json:"assigned_at"`
}

// AssignmentService manages which roles a user holds.
type AssignmentService interface {
	List(ctx context.Context, userID string) ([]AssignmentResponse, error)
	Assign(ctx context.Context, actor *model.User, req AssignRoleRequest) (*AssignmentResponse, error)
	Remove(ctx context.Context, id string) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	roles       repository.RoleRepository
	roleViews   *roleService
	tr          *locale.Translator
}

func NewAssignmentService(assignments repository.AssignmentRepository, users repository.UserRepository, roles repository.RoleRepository, tr *locale.Translator) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		users:       users,
		roles:       roles,
		roleViews:   &roleService{roles: roles, tr: tr},
		tr:          tr,
	}
}

func (s *assignmentService) List(ctx context.Context, userID string) ([]AssignmentResponse, error) {
	var filter *uuid.UUID
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return nil, apperror.FieldError("user", s.tr.T(locale.ErrInvalidValue))
		}
		filter = &id
	}
	rows, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role assignments: %w", err)
	}
	res := make([]AssignmentResponse, 0, len(rows))
	for i := range rows {
		res = append(res, s.toResponse(&rows[i]))
	}
	return res, nil
}

func (s *assignmentService) Assign(ctx context.Context, actor *model.User, req AssignRoleRequest) (*AssignmentResponse, error) {
	verr := &apperror.ValidationError{}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		verr.Add("user", s.tr.T(locale.ErrInvalidValue))
	}
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		verr.Add("role", s.tr.T(locale.ErrInvalidValue))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.FieldError("user", s.tr.T(locale.ErrUserNotFound))
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if _, err := s.roles.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.FieldError("role", s.tr.T(locale.ErrRoleNotFound))
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	exists, err := s.assignments.Exists(ctx, userID, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check role assignment: %w", err)
	}
	if exists {
		return nil, apperror.Validation(s.tr.T(locale.ErrAssignmentExists))
	}

	a := &model.UserRoleAssignment{UserID: userID, RoleID: roleID}
	if actor != nil {
		by := actor.ID
		a.AssignedByID = &by
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	stored, err := s.assignments.FindByID(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload role assignment: %w", err)
	}
	resp := s.toResponse(stored)
	return &resp, nil
}

func (s *assignmentService) Remove(ctx context.Context, id string) error {
	msg := s.tr.T(locale.ErrAssignmentMissing)
	assignmentID, err := parseID(id, msg)
	if err != nil {
		return err
	}
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return notFoundOr(err, msg, "failed to remove role assignment")
	}
	return nil
}

func (s *assignmentService) toResponse(a *model.UserRoleAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:         a.ID,
		User:       a.UserID,
		Role:       a.RoleID,
		AssignedAt: a.AssignedAt.Format(time.RFC3339),
	}
	if a.User != nil {
		resp.UserDetail = summarize(a.User)
	}
	if a.Role != nil {
		role := s.roleViews.toRoleResponse(a.Role)
		resp.RoleDetail = &role
	}
	if a.AssignedBy != nil {
		resp.AssignedByDetail = summarize(a.AssignedBy)
	}
	return resp
}

func summarize(u *model.User) *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, FullName: u.DisplayName()}
}
