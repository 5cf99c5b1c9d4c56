package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
)

// EnsureDefaultAdmin seeds the bootstrap admin account when the users
// collection is empty, so a fresh deployment can be logged into at all. The
// pin must be rotated from the settings flow on first login.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	admin := models.User{
		DocID:     primitive.NewObjectID().Hex(),
		ID:        "25",
		Name:      "Admin User",
		Role:      models.RoleAdminManager,
		PIN:       "0000",
		LastLogin: s.now(),
	}

	if err := s.repo.InsertUser(ctx, admin); err != nil {
		return err
	}

	s.logger.Warn("seeded default admin account, rotate its pin", zap.String("user", admin.ID))
	return nil
}
