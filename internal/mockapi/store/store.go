// Package store is the in-memory data set of the backend stand-in: users
// with bcrypt password hashes, sensors, their signals and run state.
// All methods are safe for concurrent use and return copies.
package store

import (
	"cmp"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/common"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound wraps common.ErrorNotFound with the missing record kind.
	ErrNotFound = common.ErrorNotFound
	// ErrInvalidCredentials is a wrong password for an existing user.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrUserAlreadyExists is returned when the e-mail is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrMissingField is returned for records without a required field.
	ErrMissingField = errors.New("missing required field")
)

// Roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

type userRecord struct {
	user         models.User
	passwordHash []byte
}

// Store holds every record of the stand-in.
type Store struct {
	cost int
	now  func() time.Time

	mu      sync.RWMutex
	seq     map[string]int64
	users   map[int64]*userRecord
	sensors map[int64]*models.Sensor
	signals map[int64]*models.Signal
	modes   map[int64]int
	builds  map[int64][]models.Build
}

// New returns an empty store hashing passwords at the given bcrypt cost.
func New(cost int) *Store {
	return &Store{
		cost:    cost,
		seq:     make(map[string]int64),
		now:     func() time.Time { return time.Now().UTC() },
		users:   make(map[int64]*userRecord),
		sensors: make(map[int64]*models.Sensor),
		signals: make(map[int64]*models.Signal),
		modes:   make(map[int64]int),
		builds:  make(map[int64][]models.Build),
	}
}

// nextID returns the next id of a record kind. Ids start at 1 per kind.
func (s *Store) nextID(kind string) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

func (s *Store) stamp() models.Timestamp {
	return models.Timestamp{Time: s.now()}
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

func sortedValues[T any](m map[int64]*T) []T {
	keys := slices.Sorted(maps.Keys(m))
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, *m[k])
	}
	return out
}

// ---- users ----

func (s *Store) CreateUser(in models.NewUser, role string) (models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return models.User{}, fmt.Errorf("user: %w", ErrMissingField)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.users {
		if strings.EqualFold(r.user.Email, email) {
			return models.User{}, ErrUserAlreadyExists
		}
	}

	u := models.User{
		ID:       s.nextID("user"),
		Name:     in.Name,
		LastName: in.LastName,
		Email:    email,
		Role:     cmp.Or(role, RoleOperator),
		Created:  s.stamp(),
	}
	s.users[u.ID] = &userRecord{user: u, passwordHash: hash}
	return u, nil
}

func (s *Store) userByEmail(email string) *userRecord {
	for _, r := range s.users {
		if strings.EqualFold(r.user.Email, email) {
			return r
		}
	}
	return nil
}

// Authenticate returns ErrNotFound for an unknown e-mail and
// ErrInvalidCredentials for a wrong password.
func (s *Store) Authenticate(email, password string) (models.User, error) {
	s.mu.RLock()
	r := s.userByEmail(strings.TrimSpace(email))
	var (
		user models.User
		hash []byte
	)
	if r != nil {
		user, hash = r.user, r.passwordHash
	}
	s.mu.RUnlock()

	if r == nil {
		return models.User{}, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ResetPassword replaces the user's password with a random one and
// returns it.
func (s *Store) ResetPassword(email string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	password := base64.RawURLEncoding.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.userByEmail(strings.TrimSpace(email))
	if r == nil {
		return "", fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	r.passwordHash = hash
	return password, nil
}

func (s *Store) User(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.users[id]
	if !ok {
		return models.User{}, notFound("user", id)
	}
	return r.user, nil
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := slices.Sorted(maps.Keys(s.users))
	out := make([]models.User, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.users[k].user)
	}
	return out
}

// UpdateUser applies the non-empty fields of in and always re-hashes the
// password.
func (s *Store) UpdateUser(id int64, in models.UserUpdate) (models.User, error) {
	if in.Password == "" {
		return models.User{}, fmt.Errorf("password: %w", ErrMissingField)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return models.User{}, notFound("user", id)
	}
	if in.Email != "" && !strings.EqualFold(in.Email, r.user.Email) {
		if s.userByEmail(in.Email) != nil {
			return models.User{}, ErrUserAlreadyExists
		}
		r.user.Email = in.Email
	}
	if in.Name != "" {
		r.user.Name = in.Name
	}
	if in.LastName != "" {
		r.user.LastName = in.LastName
	}
	r.passwordHash = hash
	return r.user, nil
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return notFound("user", id)
	}
	delete(s.users, id)
	return nil
}

func (s *Store) DeleteUsers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.users)
}
