package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
)

// User is an account allowed to sign in to the intake desk.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return containsRole(u.Roles, RoleAdmin)
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserStore keeps accounts in memory, keyed by lower-cased email.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*User
	cost  int
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*User), cost: bcrypt.DefaultCost}
}

// SeedAdmin registers an admin whose password is already bcrypt-hashed.
func (s *UserStore) SeedAdmin(email string, passwordHash []byte) (*User, error) {
	if _, err := bcrypt.Cost(passwordHash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	u := &User{
		ID:           "admin-" + uuid.NewString()[:8],
		Email:        normalizeEmail(email),
		Name:         "Administrator",
		Roles:        []string{RoleAdmin},
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
	return u, nil
}

// Register creates a staff account.
func (s *UserStore) Register(email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, email)
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Roles:        []string{RoleStaff},
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	s.users[email] = u
	return u, nil
}

// Authenticate checks password against the stored hash for email.
func (s *UserStore) Authenticate(email, password string) (*User, error) {
	s.mu.RLock()
	u, ok := s.users[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[normalizeEmail(email)]
	return u, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
