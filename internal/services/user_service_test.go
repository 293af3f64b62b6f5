package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ispcrm/internal/models"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	nextID  int
}

func (s *stubUserRepo) Create(user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	return s.byEmail[email], nil
}

func (s *stubUserRepo) ListEmailsByRole(role string) ([]string, error) {
	var out []string
	for _, u := range s.byEmail {
		if u.Role == role {
			out = append(out, u.Email)
		}
	}
	return out, nil
}

func newUserFixture() *UserService {
	repo := &stubUserRepo{byEmail: map[string]*models.User{}}
	auth := NewAuthService([]byte("test-secret"), time.Hour)
	return NewUserService(repo, auth, nil)
}

func TestRegisterDefaultsToSalesRole(t *testing.T) {
	svc := newUserFixture()

	user, err := svc.Register(&models.RegisterRequest{Name: "Andi", Email: "andi@isp.test", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSales, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newUserFixture()

	_, err := svc.Register(&models.RegisterRequest{Name: "X", Email: "x@isp.test", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newUserFixture()

	_, err := svc.Register(&models.RegisterRequest{Name: "A", Email: "dup@isp.test", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(&models.RegisterRequest{Name: "B", Email: "dup@isp.test", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newUserFixture()

	registered, err := svc.Register(&models.RegisterRequest{Name: "Sari", Email: "sari@isp.test", Password: "secret1", Role: models.RoleManager})
	require.NoError(t, err)

	user, token, err := svc.Login("sari@isp.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login("sari@isp.test", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.Login("nobody@isp.test", "secret1")
	assert.ErrorIs(t, err, ErrNotFound)
}
