package user

import "context"

// UserRepository defines persistence operations for users.
// Save and Update return a ConflictError when the email is already taken.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}
