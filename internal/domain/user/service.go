package user

import (
	"context"
	"strings"

	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Create(ctx context.Context, user *User) error {
	user.Id = pkg.GenerateULIDObject()

	now := pkg.SetTimestamps()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), 12)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	return s.Repository.Create(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	entity, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.ErrUserNotFound.WithError(err)
	}
	return entity, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.Repository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) Exists(ctx context.Context, userID ulid.ULID) error {
	_, err := s.GetByID(ctx, userID)
	return err
}

func (s *Service) UpdateName(ctx context.Context, userID ulid.ULID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return appErrors.NewValidationError("name", "nome não pode estar vazio")
	}

	entity, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	entity.Name = name
	entity.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, entity)
}

func (s *Service) Delete(ctx context.Context, userID ulid.ULID) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, userID)
}
