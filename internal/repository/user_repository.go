package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"auth-api/internal"
	"auth-api/internal/model"
)

type UserRepository struct {
	*internal.Database
}

func NewUserRepository(database *internal.Database) *UserRepository {
	return &UserRepository{database}
}

func (repository *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, first_name, last_name, email, password, phone_number, roles, is_verified, created_at, updated_at
			  FROM users WHERE email = $1`

	var user model.User
	if err := repository.DB.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("selecting user by email: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) FindById(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, first_name, last_name, email, password, phone_number, roles, is_verified, created_at, updated_at
			  FROM users WHERE id = $1`

	var user model.User
	if err := repository.DB.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("selecting user by id: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := repository.DB.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}

	return exists, nil
}

func (repository *UserRepository) Insert(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, first_name, last_name, email, password, phone_number, roles, is_verified, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := repository.DB.ExecContext(ctx, query,
		user.Id,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.PhoneNumber,
		user.Roles,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func (repository *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users
			  SET first_name = $2, last_name = $3, email = $4, phone_number = $5, updated_at = $6
			  WHERE id = $1`

	result, err := repository.DB.ExecContext(ctx, query,
		user.Id,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PhoneNumber,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (repository *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"email":     "email",
	"firstName": "first_name",
	"lastName":  "last_name",
}

// Search lists users matching the criteria with pagination. Criteria fields
// are case-insensitive substring matches; the sort column is mapped through
// an allow-list so request input never reaches the query text.
func (repository *UserRepository) Search(ctx context.Context, criteria model.SearchCriteria, page model.PageRequest) (*model.UserPage, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	addCondition("email", criteria.Email)
	addCondition("first_name", criteria.FirstName)
	addCondition("last_name", criteria.LastName)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := repository.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	sortColumn, ok := sortColumns[page.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(page.SortDirection, "asc") {
		direction = "ASC"
	}

	args = append(args, page.Size, page.Page*page.Size)
	listQuery := fmt.Sprintf(
		`SELECT id, first_name, last_name, email, password, phone_number, roles, is_verified, created_at, updated_at
		 FROM users%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, sortColumn, direction, len(args)-1, len(args),
	)

	var users []model.User
	if err := repository.DB.SelectContext(ctx, &users, listQuery, args...); err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}

	return &model.UserPage{
		Users:      users,
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}
