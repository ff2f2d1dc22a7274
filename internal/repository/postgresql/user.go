package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/user"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByUsername implements user.UserRepository.
func (u *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, empresa_id, empleado_id, usuario, email, clave_hash,
			   es_superadmin, activo, creado_el
		FROM seguridad.usuario
		WHERE LOWER(usuario) = LOWER($1)
	`

	var usr user.User
	err := q.QueryRow(ctx, query, username).Scan(
		&usr.ID, &usr.CompanyID, &usr.EmployeeID, &usr.Username, &usr.Email, &usr.PasswordHash,
		&usr.IsSuperadmin, &usr.Active, &usr.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return usr, nil
}

// RolesForUser implements user.UserRepository.
func (u *userRepository) RolesForUser(ctx context.Context, userID string) ([]string, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT r.codigo
		FROM seguridad.usuario_rol ur
		JOIN seguridad.rol r ON r.id = ur.rol_id
		WHERE ur.usuario_id = $1
		ORDER BY r.codigo
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		roles = append(roles, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user roles: %w", err)
	}

	return roles, nil
}
