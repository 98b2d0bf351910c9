// Package memory holds in-memory repository implementations backing unit
// tests and local experimentation. They honor the same error contracts as
// the postgres implementations.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository/postgres"
)

type UserRepository struct {
	mu     sync.Mutex
	users  map[int64]*model.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*model.User), nextID: 1}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, postgres.ErrDuplicate
		}
	}

	stored := *user
	stored.UserID = r.nextID
	r.nextID++
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.users[stored.UserID] = &stored
	copied := stored
	return &copied, nil
}

func (r *UserRepository) List(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.User, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *UserRepository) Get(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *UserRepository) Update(_ context.Context, id int64, patch *model.UserPatch) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = patch.PhoneNumber
	}
	if patch.Address != nil {
		u.Address = *patch.Address
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.ImageURL != nil {
		u.ImageURL = *patch.ImageURL
	}
	if patch.Specialization != nil {
		u.Specialization = patch.Specialization
	}
	if patch.AvailableDays != nil {
		u.AvailableDays = patch.AvailableDays
	}
	u.UpdatedAt = time.Now()

	copied := *u
	return &copied, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) ListDoctors(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.User, 0)
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok && u.Role == model.RoleDoctor {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *UserRepository) VerifyByEmailAndCode(_ context.Context, email, code string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email && u.VerificationCode != nil && *u.VerificationCode == code {
			u.Verified = true
			u.UpdatedAt = time.Now()
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}
