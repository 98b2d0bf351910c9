package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

const userColumns = `
	user_id, first_name, last_name, email, password, phone_number, address,
	role, image_url, verification_code, verified, specialization,
	available_days, created_at, updated_at
`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (
			first_name, last_name, email, password, phone_number, address,
			role, image_url, verification_code, verified, specialization,
			available_days, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING ` + userColumns

	var created model.User
	err := r.db.GetContext(ctx, &created, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.PhoneNumber,
		user.Address,
		user.Role,
		user.ImageURL,
		user.VerificationCode,
		user.Verified,
		user.Specialization,
		user.AvailableDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", translateError(err))
	}
	return &created, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id`

	users := []*model.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, patch *model.UserPatch) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Password != nil {
		add("password", *patch.Password)
	}
	if patch.PhoneNumber != nil {
		add("phone_number", *patch.PhoneNumber)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Specialization != nil {
		add("specialization", *patch.Specialization)
	}
	if patch.AvailableDays != nil {
		add("available_days", *patch.AvailableDays)
	}

	sets = append(sets, "updated_at = NOW()")
	query := buildPatchQuery("users", "user_id", sets, &args, id) + " RETURNING " + userColumns

	var updated model.User
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", translateError(err))
	}
	return &updated, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", translateError(err))
	}
	return requireRowsAffected(result, "user")
}

func (r *userRepository) ListDoctors(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY user_id`

	doctors := []*model.User{}
	if err := r.db.SelectContext(ctx, &doctors, query, model.RoleDoctor); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// VerifyByEmailAndCode requires email and code to match the same row. The
// conjunctive lookup, the flag update and the re-read share one transaction
// so the returned row can never be stale.
func (r *userRepository) VerifyByEmailAndCode(ctx context.Context, email, code string) (*model.User, error) {
	var user model.User
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		lookup := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND verification_code = $2`
		if err := tx.GetContext(ctx, &user, lookup, email, code); err != nil {
			return err
		}

		update := `UPDATE users SET verified = TRUE, updated_at = NOW() WHERE user_id = $1`
		if _, err := tx.ExecContext(ctx, update, user.UserID); err != nil {
			return err
		}

		reread := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
		return tx.GetContext(ctx, &user, reread, user.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	return &user, nil
}
