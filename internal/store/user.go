package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/thereayou/whisper/internal/models"
	apperr "github.com/thereayou/whisper/pkg/errors"
)

// UserStore хранит пользователей в памяти с индексами по id, email и username.
// Все три индекса обновляются атомарно под одним мьютексом.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*models.User
	byEmail    map[string]*models.User
	byUsername map[string]*models.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[uuid.UUID]*models.User),
		byEmail:    make(map[string]*models.User),
		byUsername: make(map[string]*models.User),
	}
}

// Insert добавляет пользователя, email и username должны быть свободны
func (s *UserStore) Insert(user models.User) error {
	email := strings.ToLower(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return apperr.ErrEmailTaken
	}
	if _, ok := s.byUsername[user.Username]; ok {
		return apperr.ErrUsernameTaken
	}

	stored := user
	stored.Email = email
	s.byID[stored.ID] = &stored
	s.byEmail[email] = &stored
	s.byUsername[stored.Username] = &stored

	return nil
}

func (s *UserStore) Get(id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return models.User{}, apperr.ErrUserNotFound
	}
	return *user, nil
}

func (s *UserStore) GetByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return models.User{}, apperr.ErrUserNotFound
	}
	return *user, nil
}

// UpdateProfile меняет username и/или аватар, пустые поля не трогаем
func (s *UserStore) UpdateProfile(id uuid.UUID, username, profilePic string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return models.User{}, apperr.ErrUserNotFound
	}

	if username != "" && username != user.Username {
		if _, taken := s.byUsername[username]; taken {
			return models.User{}, apperr.ErrUsernameTaken
		}
		delete(s.byUsername, user.Username)
		user.Username = username
		s.byUsername[username] = user
	}
	if profilePic != "" {
		user.ProfilePic = profilePic
	}

	return *user, nil
}

func (s *UserStore) UpdatePassword(id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return apperr.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// Remove удаляет пользователя и все его вторичные индексы
func (s *UserStore) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return apperr.ErrUserNotFound
	}

	delete(s.byEmail, user.Email)
	delete(s.byUsername, user.Username)
	delete(s.byID, id)

	return nil
}

// Search ищет по подстроке username или email, без учета регистра
func (s *UserStore) Search(query string, exclude uuid.UUID) []models.User {
	query = strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.User, 0)
	if query == "" {
		return result
	}

	for _, user := range s.byID {
		if user.ID == exclude {
			continue
		}
		if strings.Contains(strings.ToLower(user.Username), query) ||
			strings.Contains(user.Email, query) {
			result = append(result, *user)
		}
	}
	return result
}
