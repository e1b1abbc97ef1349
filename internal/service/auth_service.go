package service

import (
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register stores a new user with a digested password. A taken username
// surfaces as ErrUsernameTaken; the original record is never touched.
func (s *AuthService) Register(user *model.User) error {
	user.Password = util.HashPassword(user.Password)
	return s.UserRepo.Create(user)
}

// Login verifies the credentials and issues a token. Unknown username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByCredentials(username, util.HashPassword(password))
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}

	// Best-effort: a stale last_login never blocks a login.
	if err := s.UserRepo.UpdateLastLogin(username); err != nil {
		logger.Log.Warn("failed to update last login",
			zap.String("username", username),
			zap.Error(err),
		)
	}

	return user, token, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByUsername(claims.Username)
	if err != nil {
		return nil
	}
	return user
}
