package service

import (
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
)

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Role         *string `json:"role"`
	CurrentStage *string `json:"currentStage"`
	FieldInfo    *string `json:"fieldInfo"`
	EndGoal      *string `json:"endGoal"`
}

// UserService 处理用户资料相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(username string) (*model.User, error) {
	return s.UserRepo.FindByUsername(username)
}

// UpdateProfile applies a partial update; ErrUserNotFound when the
// username does not exist.
func (s *UserService) UpdateProfile(username string, update ProfileUpdate) error {
	fields := map[string]interface{}{}
	if update.Role != nil {
		fields["role"] = *update.Role
	}
	if update.CurrentStage != nil {
		fields["current_stage"] = *update.CurrentStage
	}
	if update.FieldInfo != nil {
		fields["field_info"] = *update.FieldInfo
	}
	if update.EndGoal != nil {
		fields["end_goal"] = *update.EndGoal
	}
	if len(fields) == 0 {
		return nil
	}
	return s.UserRepo.UpdateProfile(username, fields)
}

func (s *UserService) UpdateAvatar(username, avatarURL string) error {
	return s.UserRepo.UpdateAvatar(username, avatarURL)
}
