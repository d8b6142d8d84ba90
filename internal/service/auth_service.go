package service

import (
	"context"
	"time"

	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
	jwtExpiry  time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, jwtExpiryHours int) IAuthService {
	if jwtExpiryHours <= 0 {
		jwtExpiryHours = 24
	}
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		jwtExpiry:  time.Duration(jwtExpiryHours) * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	admin, err := uow.AdminUserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.Id.String(),
		"email":    admin.Email,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: signed,
		Name:  admin.Name,
		Email: admin.Email,
	}, nil
}
