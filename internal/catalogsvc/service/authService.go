package service

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/todtix/gamewiki-services/internal/catalogsvc/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
)

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	CreateProfile(ctx context.Context, p models.Profile) error
}

type AuthService struct {
	userStore  UserStore
	adminEmail string
}

func NewAuthService(userStore UserStore, adminEmail string) *AuthService {
	return &AuthService{userStore: userStore, adminEmail: adminEmail}
}

// Register creates the credential row, then tries to write the profile
// row. A profile failure is logged and swallowed so the sign-up still
// succeeds.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	existing, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	userId, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UserId = userId

	if err := s.userStore.CreateProfile(ctx, models.Profile{
		UserId: userId,
		Name:   name,
		Email:  email,
	}); err != nil {
		log.Errorf("Error [UserStore.CreateProfile] %s", err)
	}

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userId int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, userId)
}

// IsAdmin derives the privilege flag: exact match against the one
// configured administrator address.
func (s *AuthService) IsAdmin(email string) bool {
	return s.adminEmail != "" && strings.EqualFold(email, s.adminEmail)
}
