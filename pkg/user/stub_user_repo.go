package user

import (
	"context"
	"sync"
)

// StubUserRepo is an in-memory Repository for tests.
type StubUserRepo struct {
	mu    sync.RWMutex
	users map[string]User // id -> user
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{users: make(map[string]User)}
}

func (r *StubUserRepo) FindById(ctx context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *StubUserRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *StubUserRepo) Create(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return User{}, ErrEmailTaken
		}
	}
	r.users[user.Id] = user
	return user, nil
}

func (r *StubUserRepo) Update(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.Id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	existing.DisplayName = user.DisplayName
	existing.Timezone = user.Timezone
	r.users[user.Id] = existing
	return existing, nil
}
