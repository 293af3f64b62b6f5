package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"ispcrm/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListEmailsByRole(role string) ([]string, error)
}

type UserService struct {
	repo UserRepository
	auth *AuthService
	mail EmailSender // optional
}

func NewUserService(repo UserRepository, auth *AuthService, mail EmailSender) *UserService {
	return &UserService{repo: repo, auth: auth, mail: mail}
}

// Register creates a user with a hashed password. Role defaults to
// sales; only sales and manager are accepted.
func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleSales
	}
	if role != models.RoleSales && role != models.RoleManager {
		return nil, fmt.Errorf("role %q: %w", role, ErrValidation)
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.mail != nil {
		if err := s.mail.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail registration
			log.Warn().Err(err).Str("email", user.Email).Msg("welcome email failed")
		}
	}
	return user, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("credentials: %w", ErrNotFound)
	}
	token, err := s.auth.NewAccessToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}
