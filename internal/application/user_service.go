package application

import (
	"context"

	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"go.uber.org/zap"
)

// UserService manages the user directory.
type UserService struct {
	users  userDomain.Repository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.Repository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create registers a new user.
func (s *UserService) Create(ctx context.Context, u userDomain.User) (*userDomain.User, error) {
	saved, err := s.users.Save(ctx, &u)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.Int64("user_id", saved.ID))
	return saved, nil
}

// Update applies a partial update to an existing user.
func (s *UserService) Update(ctx context.Context, userID int64, upd userDomain.Update) (*userDomain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user updated", zap.Int64("user_id", userID))
	return updated, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(ctx context.Context, userID int64) (*userDomain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]userDomain.User, error) {
	return s.users.FindAll(ctx)
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", userID))
	return nil
}
