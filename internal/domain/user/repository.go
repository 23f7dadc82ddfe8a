package user

import "context"

// Repository defines the persistence contract for users.
type Repository interface {
	// Save persists a new user and assigns its id.
	Save(ctx context.Context, u *User) (*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) (*User, error)

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id int64) (*User, error)

	// ExistsByID reports whether a user with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindAll retrieves all users.
	FindAll(ctx context.Context) ([]User, error)

	// Delete removes a user by id.
	Delete(ctx context.Context, id int64) error
}
