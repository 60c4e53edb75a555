package auth

import (
	"context"

	"Parcelo/internal/domain/user"
	appErrors "Parcelo/internal/errors"

	"google.golang.org/api/idtoken"
)

type Service struct {
	Repository     user.Repository
	UserService    *user.Service
	GoogleClientID string
}

func NewService(repo user.Repository, userSvc *user.Service, googleClientID string) *Service {
	return &Service{
		Repository:     repo,
		UserService:    userSvc,
		GoogleClientID: googleClientID,
	}
}

type Login struct {
	Email    string
	Password string
}

func (s *Service) Login(ctx context.Context, login Login) (*user.User, error) {
	entity, err := s.UserService.GetByEmail(ctx, login.Email)
	if err != nil || entity == nil {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := PasswordValidate(login.Password, entity.Password); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Register(ctx context.Context, entity *user.User) error {
	existing, err := s.UserService.GetByEmail(ctx, entity.Email)
	if err == nil && existing != nil {
		return appErrors.ErrEmailAlreadyExists
	}
	if err := PasswordRequirements(entity.Password); err != nil {
		return err
	}
	return s.UserService.Create(ctx, entity)
}

func (s *Service) GoogleLogin(ctx context.Context, credential string) (*user.User, error) {
	if s.GoogleClientID == "" {
		return nil, appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Google OAuth não está configurado. Configure GOOGLE_OAUTH_CLIENT_ID e GOOGLE_OAUTH_ENABLED=true")
	}

	if credential == "" {
		return nil, appErrors.NewAuthError("CREDENTIAL_MISSING", "Credencial do Google não fornecida")
	}

	payload, err := idtoken.Validate(ctx, credential, s.GoogleClientID)
	if err != nil {
		return nil, appErrors.NewAuthError("INVALID_GOOGLE_TOKEN", "Token do Google inválido").WithError(err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, appErrors.NewAuthError("INVALID_GOOGLE_TOKEN", "Token do Google não contém email")
	}

	entity, err := s.UserService.GetByEmail(ctx, email)
	if err == nil && entity != nil {
		return entity, nil
	}

	newUser := &user.User{
		Name:     name,
		Email:    email,
		Password: randomPassword(),
	}
	if err := s.UserService.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}
