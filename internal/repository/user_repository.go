package repository

import (
	"errors"
	"strings"
	"time"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user. The unique constraint on username is the
// source of truth for duplicates; the error is mapped so callers never
// see driver-specific text.
func (r *UserRepository) Create(user *model.User) error {
	err := r.DB.Create(user).Error
	if err != nil && isDuplicateKey(err) {
		return util.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByCredentials matches on username and the stored password digest.
// Plaintext never reaches this layer.
func (r *UserRepository) FindByCredentials(username, passwordHash string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? AND password = ?", username, passwordHash).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the mutable profile fields.
// Returns ErrUserNotFound when the username does not exist.
func (r *UserRepository) UpdateProfile(username string, fields map[string]interface{}) error {
	res := r.DB.Model(&model.User{}).Where("username = ?", username).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// The mysql driver reports zero affected rows for an update that
		// changes nothing, so a missing row has to be told apart by lookup.
		var count int64
		if err := r.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrUserNotFound
		}
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(username, avatarURL string) error {
	return r.UpdateProfile(username, map[string]interface{}{"avatar": avatarURL})
}

func (r *UserRepository) UpdateLastLogin(username string) error {
	return r.DB.Model(&model.User{}).
		Where("username = ?", username).
		Update("last_login", time.Now()).
		Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
