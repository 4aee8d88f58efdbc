//go:generate mockgen -source=user_repository.go -destination=mocks/mock_user_repository.go -package=mocks

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ctchen222/tictactoe-ai/internal/api/models"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

var tracer = otel.Tracer("repository.user")

const (
	insertUser = `INSERT INTO users (username, password_hash) VALUES (:username, :password_hash)`
	selectUser = `SELECT id, username, password_hash FROM users WHERE username = ?`
)

// UserRepository stores the accounts allowed to open game sessions.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type sqlUserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

// CreateUser stores user with a bcrypt hash of password and fills in its ID.
func (r *sqlUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	ctx, span := tracer.Start(ctx, "UserRepository.CreateUser", trace.WithAttributes(attribute.String("user.name", user.Username)))
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fail(span, fmt.Errorf("hash password: %w", err))
	}
	user.PasswordHash = string(hash)

	res, err := r.db.NamedExecContext(ctx, insertUser, user)
	if err != nil {
		return fail(span, fmt.Errorf("insert user %q: %w", user.Username, err))
	}
	if id, err := res.LastInsertId(); err == nil {
		user.ID = id
		span.SetAttributes(attribute.Int64("user.id", id))
	}
	return nil
}

// GetUserByUsername returns nil, nil when no such user exists.
func (r *sqlUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByUsername", trace.WithAttributes(attribute.String("user.name", username)))
	defer span.End()

	var user models.User
	switch err := r.db.GetContext(ctx, &user, selectUser, username); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fail(span, fmt.Errorf("select user %q: %w", username, err))
	}
	return &user, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
