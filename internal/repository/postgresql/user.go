package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/dthlogistics/release-portal/internal/db"
	"github.com/dthlogistics/release-portal/internal/repository"
)

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *repository.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO app_users (username, password, email, full_name, role)
        VALUES ($1, $2, $3, $4, $5)
    `, user.Username, string(hashedPassword), user.Email, user.FullName, user.Role)
	return err
}

// Validate checks the credentials and returns the resolved user, which
// becomes the acting identity for load operations.
func (r *UserRepo) Validate(ctx context.Context, username, password string) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT * FROM app_users WHERE username = $1", username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

// EnsureAdmin seeds the initial operator account on first boot.
func (r *UserRepo) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM app_users WHERE username = $1", username).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return r.CreateUser(ctx, &repository.User{
		Username: username,
		Email:    username + "@dthlogistics.com",
		FullName: "Administrator",
		Role:     "ADMIN",
	}, password)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT * FROM app_users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
