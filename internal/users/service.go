package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/velora-shop/velora-backend/pkg/auth"
	"github.com/velora-shop/velora-backend/pkg/config"
	"github.com/velora-shop/velora-backend/pkg/db/models"
	"github.com/velora-shop/velora-backend/pkg/enums"
	"github.com/velora-shop/velora-backend/pkg/errors"
	"github.com/velora-shop/velora-backend/pkg/logger"
	"github.com/velora-shop/velora-backend/pkg/security"
)

// PermissionsInput mirrors the grant booleans on the account form.
type PermissionsInput struct {
	ManageProducts   bool `json:"manageProducts"`
	DeleteProducts   bool `json:"deleteProducts"`
	ManageCategories bool `json:"manageCategories"`
	DeleteCategories bool `json:"deleteCategories"`
	ManageOrders     bool `json:"manageOrders"`
	DeleteOrders     bool `json:"deleteOrders"`
	ManageBanners    bool `json:"manageBanners"`
	DeleteBanners    bool `json:"deleteBanners"`
	ManagePromoCodes bool `json:"managePromoCodes"`
	DeletePromoCodes bool `json:"deletePromoCodes"`
	ManageBlogs      bool `json:"manageBlogs"`
	DeleteBlogs      bool `json:"deleteBlogs"`
	ManageUsers      bool `json:"manageUsers"`
}

// CreateUserInput is the admin account creation payload.
type CreateUserInput struct {
	Username    string           `json:"username" validate:"required,min=3,max=60"`
	Password    string           `json:"password" validate:"required,min=8,max=128"`
	DisplayName *string          `json:"displayName" validate:"omitempty,max=120"`
	Role        string           `json:"role" validate:"required,oneof=owner manager staff"`
	IsActive    bool             `json:"isActive"`
	Permissions PermissionsInput `json:"permissions"`
}

// UpdateUserInput changes an account. Password is optional; empty keeps
// the current hash.
type UpdateUserInput struct {
	Password    string           `json:"password" validate:"omitempty,min=8,max=128"`
	DisplayName *string          `json:"displayName" validate:"omitempty,max=120"`
	Role        string           `json:"role" validate:"required,oneof=owner manager staff"`
	IsActive    bool             `json:"isActive"`
	Permissions PermissionsInput `json:"permissions"`
}

// UserDTO is the panel account payload. The hash never leaves storage.
type UserDTO struct {
	ID          uuid.UUID           `json:"id"`
	Username    string              `json:"username"`
	DisplayName *string             `json:"displayName,omitempty"`
	Role        string              `json:"role"`
	IsActive    bool                `json:"isActive"`
	LastLoginAt string              `json:"lastLoginAt,omitempty"`
	Permissions pkgAuth.Permissions `json:"permissions"`
	CreatedAt   string              `json:"createdAt"`
}

// Service covers back-office account administration.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
	cfg  config.PasswordConfig
	logg *logger.Logger
}

// NewService wires the account admin service.
func NewService(repo *Repository, cfg config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users service requires a repository")
	}
	if logg == nil {
		return nil, fmt.Errorf("users service requires a logger")
	}
	return &service{repo: repo, cfg: cfg, logg: logg}, nil
}

func newUserDTO(user *models.User) UserDTO {
	dto := UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		IsActive:    user.IsActive,
		Permissions: pkgAuth.PermissionsFromUser(user),
		CreatedAt:   user.CreatedAt.UTC().Format(time.RFC3339),
	}
	if user.LastLoginAt != nil {
		dto.LastLoginAt = user.LastLoginAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func applyPermissions(user *models.User, perms PermissionsInput) {
	user.CanManageProducts = perms.ManageProducts
	user.CanDeleteProducts = perms.DeleteProducts
	user.CanManageCategories = perms.ManageCategories
	user.CanDeleteCategories = perms.DeleteCategories
	user.CanManageOrders = perms.ManageOrders
	user.CanDeleteOrders = perms.DeleteOrders
	user.CanManageBanners = perms.ManageBanners
	user.CanDeleteBanners = perms.DeleteBanners
	user.CanManagePromoCodes = perms.ManagePromoCodes
	user.CanDeletePromoCodes = perms.DeletePromoCodes
	user.CanManageBlogs = perms.ManageBlogs
	user.CanDeleteBlogs = perms.DeleteBlogs
	user.CanManageUsers = perms.ManageUsers
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "list users")
	}
	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newUserDTO(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := newUserDTO(user)
	return &dto, nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load user")
	}
	if user == nil {
		return nil, errors.New(errors.CodeNotFound, "user not found")
	}
	return user, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "unknown role")
	}
	username := strings.ToLower(strings.TrimSpace(input.Username))
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "check username")
	}
	if existing != nil {
		return nil, errors.New(errors.CodeConflict, "username already taken")
	}
	hash, err := security.HashPassword(input.Password, s.cfg)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "hash password")
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         role,
		IsActive:     input.IsActive,
	}
	applyPermissions(user, input.Permissions)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create user")
	}
	s.logg.Info(s.logg.WithField(ctx, "created_user", username), "admin.user.created")
	dto := newUserDTO(user)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "unknown role")
	}
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == enums.RoleOwner && (role != enums.RoleOwner || !input.IsActive) {
		remaining, err := s.repo.CountOwners(ctx, &id)
		if err != nil {
			return nil, errors.Wrap(errors.CodeDependency, err, "count owners")
		}
		if remaining == 0 {
			return nil, errors.New(errors.CodeConflict, "cannot demote the last owner")
		}
	}
	if input.Password != "" {
		hash, err := security.HashPassword(input.Password, s.cfg)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}
	user.DisplayName = input.DisplayName
	user.Role = role
	user.IsActive = input.IsActive
	applyPermissions(user, input.Permissions)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update user")
	}
	dto := newUserDTO(user)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == enums.RoleOwner {
		remaining, err := s.repo.CountOwners(ctx, &id)
		if err != nil {
			return errors.Wrap(errors.CodeDependency, err, "count owners")
		}
		if remaining == 0 {
			return errors.New(errors.CodeConflict, "cannot delete the last owner")
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete user")
	}
	s.logg.Info(s.logg.WithField(ctx, "deleted_user", user.Username), "admin.user.deleted")
	return nil
}
