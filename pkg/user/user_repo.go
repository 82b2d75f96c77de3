package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")

type Repository interface {
	FindById(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db}
}

func (r *UserRepo) FindById(ctx context.Context, id string) (User, error) {
	query := `SELECT id, email, display_name, password_hash, timezone FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, email, display_name, password_hash, timezone FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepo) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.Id, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan user row: %w", err)
		log.Error(err)
		return User{}, err
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, user User) (User, error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	query := `INSERT INTO users (id, email, display_name, password_hash, timezone) VALUES ($1, $2, $3, $4, $5)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return User{}, err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.Id, user.Email, user.DisplayName, user.PasswordHash, user.Timezone)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, timezone = $2 WHERE id = $3`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return User{}, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, user.DisplayName, user.Timezone, user.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return User{}, err
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return User{}, ErrUserNotFound
	}
	return r.FindById(ctx, user.Id)
}
