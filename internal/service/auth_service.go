package service

import (
	"strings"

	"mindclass_backend/internal/config"
	"mindclass_backend/internal/model"
	"mindclass_backend/internal/repository"
	"mindclass_backend/internal/util"
	"mindclass_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxUIDTries = 20

var ErrInvalidRole = errors.New("invalid role")

type LoginRequest struct {
	Email string         `json:"email" binding:"required,email"`
	Name  string         `json:"name"`
	Role  model.UserRole `json:"role" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService issues identities. There are no passwords: an email signs in
// as the account that owns it, or creates one with a fresh MC- uid.
type AuthService struct {
	Users repository.UserStore
	Cfg   *config.Config
}

func NewAuthService(users repository.UserStore, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Cfg: cfg}
}

func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.Users.FindByEmail(email)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.register(email, req.Name, req.Role)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) register(email, name string, role model.UserRole) (*model.User, error) {
	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	id, err := s.freshUID()
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:          id,
		Email:       email,
		Name:        name,
		Role:        role,
		Preferences: model.Preferences{Language: "English", GradeLevel: "10", Style: "Visual"},
		Friends:     []string{},
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	logger.Log.Info("User registered", zap.String("uid", id), zap.String("role", string(role)))
	return user, nil
}

func (s *AuthService) freshUID() (string, error) {
	for i := 0; i < maxUIDTries; i++ {
		id := util.NewUID()
		if _, err := s.Users.FindByID(id); errors.Is(err, repository.ErrNotFound) {
			return id, nil
		}
	}
	return "", errors.New("could not allocate a user id")
}

func (s *AuthService) GetCurrentUser(c *gin.Context) (*model.User, error) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil, util.ErrUserNotFound
	}
	user, err := s.Users.FindByID(claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}
