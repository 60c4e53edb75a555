package infrastructure

import (
	"context"
	"time"

	"Parcelo/internal/domain/user"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

type userDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (userDB) TableName() string {
	return "users"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, err
	}

	return &user.User{
		Id:        id,
		Name:      udb.Name,
		Email:     udb.Email,
		Password:  udb.Password,
		CreatedAt: udb.CreatedAt,
		UpdatedAt: udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:        u.Id.String(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	return dbFrom(ctx, r.DB).WithContext(ctx).Table("users").Create(udb).Error
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	return dbFrom(ctx, r.DB).WithContext(ctx).Model(&userDB{}).Where("id = ?", udb.Id).Updates(udb).Error
}

func (r *UserRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return dbFrom(ctx, r.DB).WithContext(ctx).Where("id = ?", id.String()).Delete(&userDB{}).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	var udb userDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("id = ?", id.String()).First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var udb userDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("email = ?", email).First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}
