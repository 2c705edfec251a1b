package user

import (
	"context"
	"fmt"

	"neoverse-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (string, User, error)
	Login(ctx context.Context, username, password string) (string, User, error)
	Profile(ctx context.Context, userID int) (User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	ListAll(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, userID int, role Role) (User, error)
	MakeAdmin(ctx context.Context, userID int) (User, error)
	CreateAdmin(ctx context.Context, username, email, password string) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, params, hashed, RoleUser)
	if err != nil {
		log.Error("failed to create user", zap.String("username", params.Username), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Username, string(u.Role))
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("username", params.Username),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Username, string(u.Role))
	return token, u, err
}

func (s *service) Profile(ctx context.Context, userID int) (User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	if params.Email != nil {
		current, err := s.repo.FindByID(ctx, params.UserID)
		if err != nil {
			return User{}, err
		}
		if *params.Email != current.Email {
			taken, err := s.repo.EmailTaken(ctx, *params.Email, params.UserID)
			if err != nil {
				return User{}, err
			}
			if taken {
				return User{}, ErrEmailTaken
			}
		}
	}

	return s.repo.UpdateProfile(ctx, params)
}

func (s *service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPasswordHash(currentPassword, u.Password) {
		return ErrWrongPassword
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, hashed)
}

func (s *service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) UpdateRole(ctx context.Context, userID int, role Role) (User, error) {
	return s.repo.UpdateRole(ctx, userID, role)
}

func (s *service) MakeAdmin(ctx context.Context, userID int) (User, error) {
	return s.repo.UpdateRole(ctx, userID, RoleAdmin)
}

// CreateAdmin bootstraps an admin account. Safe to call again for the same
// username, it reports ErrUserExists instead of duplicating the account.
func (s *service) CreateAdmin(ctx context.Context, username, email, password string) (User, error) {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return User{}, ErrUserExists
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(ctx, RegisterParams{
		Username: username,
		Email:    email,
		Password: password,
	}, hashed, RoleAdmin)
}
