package admin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barberx/BarberX-BookingService/internal/domain"
	"github.com/barberx/BarberX-BookingService/pkg/dbmetrics"
	"github.com/barberx/BarberX-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с учетными записями администраторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUsername получает администратора по имени пользователя
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "username", "password_hash", "created_at").
		From("admins").
		Where(squirrel.Eq{"username": username}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - build select query: %v", ErrBuildQuery, err)
	}

	var adm domain.Admin
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&adm.ID,
		&adm.Username,
		&adm.PasswordHash,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - scan admin: %v", ErrExecQuery, err)
	}

	adm.CreatedAt = createdAt.Time

	return &adm, nil
}

// Upsert создает администратора или обновляет его пароль
// Используется сидированием начальных данных
func (r *Repository) Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admins").
		Columns("username", "password_hash").
		Values(username, passwordHash).
		Suffix("ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash").
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	adm := domain.Admin{Username: username, PasswordHash: passwordHash}
	var createdAt sql.NullTime

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&adm.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	adm.CreatedAt = createdAt.Time

	return &adm, nil
}
