package store

import (
	"errors"

	"github.com/lukasmoe/authgate/internal/models"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned by CredentialStore.Create when the email is
// already registered, whether detected by the pre-insert lookup or by
// the unique index catching a concurrent insert.
var ErrEmailTaken = errors.New("email already registered")

// CredentialStore persists user records. Emails are unique and
// case-sensitive as stored; users are never updated or deleted here.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// FindByEmail returns the user with the given email, or
// gorm.ErrRecordNotFound.
func (s *CredentialStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id, or gorm.ErrRecordNotFound.
func (s *CredentialStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. The existence check keeps the common-path
// error user-facing; the unique index remains the authority when two
// registrations race past the check.
func (s *CredentialStore) Create(email, passwordHash string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	user := models.User{Email: email, PasswordHash: passwordHash}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}
