package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wm-backend/internal/apperror"
	"wm-backend/internal/locale"
	"wm-backend/internal/model"
	"wm-backend/internal/permission"
	"wm-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// DTOs for Request validation
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password" binding:"required"`
	RePassword  string `json:"re_password" binding:"required"`
	IsSuperuser bool   `json:"is_superuser"`
}

// PatchUserRequest is partial; nil fields are left untouched.
type PatchUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

type LoginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Message string       `json:"message"`
	Access  string       `json:"access"`
	User    UserResponse `json:"user"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  string    `json:"date_joined"`
	LastLogin   *string   `json:"last_login"`
}

type UserDetailResponse struct {
	UserResponse
	Roles []uuid.UUID `json:"roles"`
}

type MeResponse struct {
	UserResponse
	Permissions       map[model.FieldName]model.Level `json:"permissions"`
	SystemPermissions map[model.Capability]bool       `json:"system_permissions"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Me(ctx context.Context, actor *model.User) (*MeResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	GetUser(ctx context.Context, id string) (*UserDetailResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	PatchUser(ctx context.Context, actor *model.User, id string, req PatchUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, actor *model.User, id string) (string, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]UserSummary, error)
	EnsureSuperuser(ctx context.Context, username, email, password string) error
}

// UserDeps are the collaborators of the user service.
type UserDeps struct {
	Users       repository.UserRepository
	Assignments repository.AssignmentRepository
	Resolver    *permission.Resolver
	Translator  *locale.Translator
	Logger      *zap.SugaredLogger
	JWTSecret   []byte
	JWTTTL      time.Duration
	Now         func() time.Time
}

type userService struct {
	repo        repository.UserRepository
	assignments repository.AssignmentRepository
	resolver    *permission.Resolver
	tr          *locale.Translator
	log         *zap.SugaredLogger
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
}

// NewUserService returns a new instance of UserService
func NewUserService(d UserDeps) UserService {
	s := &userService{
		repo:        d.Users,
		assignments: d.Assignments,
		resolver:    d.Resolver,
		tr:          d.Translator,
		log:         d.Logger,
		secret:      d.JWTSecret,
		ttl:         d.JWTTTL,
		now:         d.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}
	return s
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) UserResponse {
	res := UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		DateJoined:  user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		ts := user.LastLogin.Format(time.RFC3339)
		res.LastLogin = &ts
	}
	return res
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.Validation(s.tr.T(locale.ErrCredentialsNeeded))
	}
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation(s.tr.T(locale.ErrBadCredentials))
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Validation(s.tr.T(locale.ErrBadCredentials))
	}
	if !user.IsActive {
		return nil, apperror.Validation(s.tr.T(locale.ErrInactiveAccount))
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		s.log.Warnw("last login not stored", "user", user.ID, "error", err)
	}

	return &TokenResponse{
		Message: s.tr.T(locale.MsgLoginOK),
		Access:  tokenString,
		User:    mapToResponse(user),
	}, nil
}

// Authenticate validates an access token and loads its active user.
func (s *userService) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperror.Unauthorized("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Unauthorized("invalid token subject")
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("user inactive")
	}
	return user, nil
}

func (s *userService) Me(ctx context.Context, actor *model.User) (*MeResponse, error) {
	eff, err := s.resolver.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &MeResponse{
		UserResponse:      mapToResponse(actor),
		Permissions:       eff.FieldMap(),
		SystemPermissions: eff.CapabilityMap(),
	}, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	users, total, err := s.repo.List(ctx, offset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, mapToResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*UserDetailResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	roleIDs, err := s.assignments.RoleIDsForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user roles: %w", err)
	}
	if roleIDs == nil {
		roleIDs = []uuid.UUID{}
	}
	return &UserDetailResponse{UserResponse: mapToResponse(user), Roles: roleIDs}, nil
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	verr := &apperror.ValidationError{}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		verr.Add("username", s.tr.T(locale.ErrRequired))
	}
	if len(req.Password) < minPasswordLength {
		verr.Add("password", s.tr.T(locale.ErrPasswordShort))
	}
	if req.Password != req.RePassword {
		verr.Add("password", s.tr.T(locale.ErrPasswordMismatch))
	}
	if err := s.checkUnique(ctx, username, req.Email, nil, verr); err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:    username,
		Email:       strings.TrimSpace(req.Email),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    string(hashedPassword),
		IsSuperuser: req.IsSuperuser,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	res := mapToResponse(user)
	return &res, nil
}

// PatchUser updates profile and flags. An administrator can never remove
// their own superuser flag.
func (s *userService) PatchUser(ctx context.Context, actor *model.User, id string, req PatchUserRequest) (*UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != nil && actor.ID == user.ID && req.IsSuperuser != nil && !*req.IsSuperuser {
		return nil, apperror.Validation(s.tr.T(locale.ErrSelfDemote))
	}

	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		verr := &apperror.ValidationError{}
		if err := s.checkUnique(ctx, "", *req.Email, &user.ID, verr); err != nil {
			return nil, err
		}
		if err := verr.OrNil(); err != nil {
			return nil, err
		}
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	res := mapToResponse(user)
	return &res, nil
}

// DeleteUser removes another user's account and returns its username.
// Movements and assignments made by the user keep existing with a null
// reference.
func (s *userService) DeleteUser(ctx context.Context, actor *model.User, id string) (string, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	if actor != nil && actor.ID == user.ID {
		return "", apperror.Validation(s.tr.T(locale.ErrSelfDelete))
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return "", notFoundOr(err, s.tr.T(locale.ErrUserNotFound), "failed to delete user")
	}
	return user.Username, nil
}

func (s *userService) SearchUsers(ctx context.Context, query string, limit int) ([]UserSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	users, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	res := make([]UserSummary, 0, len(users))
	for i := range users {
		res = append(res, *summarize(&users[i]))
	}
	return res, nil
}

// EnsureSuperuser creates the bootstrap administrator when no user with
// that username exists yet.
func (s *userService) EnsureSuperuser(ctx context.Context, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up bootstrap user: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &model.User{
		Username:    username,
		Email:       email,
		Password:    string(hashed),
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create bootstrap user: %w", err)
	}
	s.log.Infow("bootstrap superuser created", "username", username)
	return nil
}

func (s *userService) checkUnique(ctx context.Context, username, email string, except *uuid.UUID, verr *apperror.ValidationError) error {
	if username != "" {
		existing, err := s.repo.GetByUsername(ctx, username)
		switch {
		case err == nil && (except == nil || existing.ID != *except):
			verr.Add("username", s.tr.T(locale.ErrUsernameTaken))
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}
	}
	if email != "" {
		existing, err := s.repo.GetByEmail(ctx, email)
		switch {
		case err == nil && (except == nil || existing.ID != *except):
			verr.Add("email", s.tr.T(locale.ErrEmailTaken))
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to check email: %w", err)
		}
	}
	return nil
}

func (s *userService) find(ctx context.Context, id string) (*model.User, error) {
	msg := s.tr.T(locale.ErrUserNotFound)
	userID, err := parseID(id, msg)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, msg, "failed to fetch user")
	}
	return user, nil
}
