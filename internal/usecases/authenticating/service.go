package authenticating

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/season-pricing-api/infrastructure/repository"
	"github.com/vfg2006/season-pricing-api/internal/config"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// Authenticator autentica usuários e emite/valida tokens de acesso.
type Authenticator interface {
	Login(email, password string) (string, *domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	CreateUser(user *domain.User, password string) (*domain.User, error)
	GetUserByID(userID int) (*domain.User, error)
	ListUsers() ([]*domain.User, error)
}

type Service struct {
	userRepo repository.UserRepository
	secret   []byte
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		secret:   []byte(cfg.Auth.Secret),
	}
}

// Login valida as credenciais e emite um JWT com os claims do usuário.
func (s *Service) Login(email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return "", nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if user == nil {
		return "", nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	if !user.Active {
		return "", nil, NewAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Tentativa de login com senha incorreta")
		return "", nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrInternalServer, "erro ao gerar token")
	}

	return token, user, nil
}

// ValidateToken interpreta e valida um JWT emitido pelo Login.
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

// CreateUser registra um novo usuário com a senha já protegida por bcrypt.
func (s *Service) CreateUser(user *domain.User, password string) (*domain.User, error) {
	if user.Email == "" || password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email e senha são obrigatórios")
	}

	if len(password) < 8 {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, "a senha deve ter pelo menos 8 caracteres")
	}

	existing, err := s.userRepo.GetUserByEmail(user.Email)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hash)
	user.Active = true

	created, err := s.userRepo.CreateUser(user)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"user_id": created.ID,
		"email":   created.Email,
	}).Info("Usuário criado com sucesso")

	return created, nil
}

func (s *Service) GetUserByID(userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "")
	}
	return user, nil
}

func (s *Service) ListUsers() ([]*domain.User, error) {
	users, err := s.userRepo.ListUser()
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	return users, nil
}

func (s *Service) generateToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := &domain.Claims{
		UserID:       user.ID,
		UserName:     user.Name,
		UserLastname: user.Lastname,
		UserEmail:    user.Email,
		UserActive:   user.Active,
		UserRoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Subject:   user.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
