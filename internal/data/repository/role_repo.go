package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoleRepository interface {
	Assign(ctx context.Context, assignment *entity.RoleAssignment) error
	FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error)
}

type roleRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoleRepository(db database.Querier, log *zap.Logger) RoleRepository {
	return &roleRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_role")),
	}
}

func (r *roleRepository) Assign(ctx context.Context, assignment *entity.RoleAssignment) error {
	query := `
		INSERT INTO user_roles (id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, role) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		assignment.ID,
		assignment.UserID,
		assignment.Role,
		assignment.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to assign role",
			zap.Error(err),
			zap.String("user_id", assignment.UserID.String()),
			zap.String("role", string(assignment.Role)),
		)
		return fmt.Errorf("assign role %s to %s: %w", assignment.Role, assignment.UserID.String(), err)
	}

	return nil
}

// FindRolesByUserID returns roles in assignment order.
func (r *roleRepository) FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error) {
	query := `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find roles", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find roles for %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var roles []entity.UserRole
	for rows.Next() {
		var role entity.UserRole
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}
