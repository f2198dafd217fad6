package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
	userDomain "github.com/maximboltinov/ShareIt/internal/domain/user"
)

// ensureUserExists returns a NotFoundError when no user has the given ID.
func ensureUserExists(ctx context.Context, users userDomain.UserRepository, userID int64) error {
	exists, err := users.ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError("User", strconv.FormatInt(userID, 10))
	}
	return nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
