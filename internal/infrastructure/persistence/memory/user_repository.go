// Package memory keeps user documents in process memory. It backs the
// DB_DRIVER=memory mode and the HTTP and usecase tests.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"profile-api/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu    sync.RWMutex
	docs  map[uuid.UUID][]byte
	email map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		docs:  map[uuid.UUID][]byte{},
		email: map[string]uuid.UUID{},
	}
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(u.Email)
	if _, taken := r.email[key]; taken {
		return user.ErrEmailTaken
	}
	r.docs[u.ID] = b
	r.email[key] = u.ID
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	out := make([]user.User, 0, len(r.docs))
	for _, b := range r.docs {
		var u user.User
		if err := json.Unmarshal(b, &u); err != nil {
			r.mu.RUnlock()
			return nil, err
		}
		out = append(out, u)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	b, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	var u user.User
	if err := json.Unmarshal(b, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) Update(_ context.Context, u user.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.docs[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	key := emailKey(u.Email)
	if owner, taken := r.email[key]; taken && owner != u.ID {
		return user.ErrEmailTaken
	}

	var old user.User
	if err := json.Unmarshal(prev, &old); err == nil {
		delete(r.email, emailKey(old.Email))
	}
	r.docs[u.ID] = b
	r.email[key] = u.ID
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.docs[id]
	if !ok {
		return user.ErrNotFound
	}
	var u user.User
	if err := json.Unmarshal(b, &u); err == nil {
		delete(r.email, emailKey(u.Email))
	}
	delete(r.docs, id)
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
