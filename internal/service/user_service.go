package service

import (
	"context"
	"errors"

	"moviehub/internal/auth"
	"moviehub/internal/dto"
	"moviehub/internal/models"
	"moviehub/internal/repository"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Update applies a partial update. allowRoleChange is false on the
	// self endpoint: users cannot promote themselves.
	Update(ctx context.Context, user *models.User, req dto.UpdateUserDTO, allowRoleChange bool) (*models.User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, page, pageSize)
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserDTO) (*models.User, error) {
	email := NormalizeEmail(req.Email)

	// pre-checks give clean errors; the unique indexes stay the guarantee
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameInUse
	}

	user := &models.User{
		Email:     email,
		Username:  req.Username,
		Role:      req.Role,
		Bio:       req.Bio,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, user *models.User, req dto.UpdateUserDTO, allowRoleChange bool) (*models.User, error) {
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
				return nil, ErrEmailInUse
			}
			user.Email = email
		}
	}
	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(ctx, *req.Username); err == nil {
			return nil, ErrUsernameInUse
		}
		user.Username = *req.Username
	}
	if req.Role != nil && allowRoleChange {
		user.Role = *req.Role
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		// no old-password check: possession of a valid token is enough
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	if err := s.userRepo.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
