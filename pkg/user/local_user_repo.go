package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

const localUsersFile = "users.json"

// LocalUserRepo keeps all accounts in a single JSON file under the configured
// data directory. The file is read in full and rewritten in full on every
// mutation, matching the local event store.
type LocalUserRepo struct {
	mu   sync.Mutex
	path string
}

func NewLocalUserRepo(dir string) (*LocalUserRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}
	return &LocalUserRepo{path: filepath.Join(dir, localUsersFile)}, nil
}

type localUserRecord struct {
	Id           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PasswordHash string `json:"passwordHash"`
	Timezone     string `json:"timezone"`
}

func (r *LocalUserRepo) readAll() ([]localUserRecord, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []localUserRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read users file: %w", err)
	}
	var records []localUserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("could not decode users file: %w", err)
	}
	return records, nil
}

func (r *LocalUserRepo) writeAll(records []localUserRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("could not encode users: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("could not write users file: %w", err)
	}
	return nil
}

func (r *LocalUserRepo) FindById(ctx context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll()
	if err != nil {
		log.Error(err)
		return User{}, err
	}
	for _, rec := range records {
		if rec.Id == id {
			return recordToUser(rec), nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *LocalUserRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll()
	if err != nil {
		log.Error(err)
		return User{}, err
	}
	for _, rec := range records {
		if rec.Email == email {
			return recordToUser(rec), nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *LocalUserRepo) Create(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll()
	if err != nil {
		log.Error(err)
		return User{}, err
	}
	for _, rec := range records {
		if rec.Email == user.Email {
			return User{}, ErrEmailTaken
		}
	}
	records = append(records, userToRecord(user))
	if err := r.writeAll(records); err != nil {
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *LocalUserRepo) Update(ctx context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.readAll()
	if err != nil {
		log.Error(err)
		return User{}, err
	}
	for i, rec := range records {
		if rec.Id == user.Id {
			records[i].DisplayName = user.DisplayName
			records[i].Timezone = user.Timezone
			if err := r.writeAll(records); err != nil {
				log.Error(err)
				return User{}, err
			}
			return recordToUser(records[i]), nil
		}
	}
	return User{}, ErrUserNotFound
}

func recordToUser(rec localUserRecord) User {
	return User{
		Id:           rec.Id,
		Email:        rec.Email,
		DisplayName:  rec.DisplayName,
		PasswordHash: rec.PasswordHash,
		Timezone:     rec.Timezone,
	}
}

func userToRecord(u User) localUserRecord {
	return localUserRecord{
		Id:           u.Id,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Timezone:     u.Timezone,
	}
}
