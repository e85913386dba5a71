package users

import (
	"context"
	"errors"

	"seatbook/internal/shared/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	// WithTx binds the repository to an open transaction
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]User, error)

	// EnsureExists inserts a bare row for id unless one is already present
	EnsureExists(ctx context.Context, id uuid.UUID) error
	// LockForUpdate takes a row lock on the user until the transaction ends
	LockForUpdate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return dberr.Classify("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, dberr.Classify("get user", err)
	}
	return &user, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error
	return users, dberr.Classify("list users", err)
}

func (r *repository) EnsureExists(ctx context.Context, id uuid.UUID) error {
	user := User{ID: id, Role: RoleUser}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&user).Error
	return dberr.Classify("ensure user", err)
}

func (r *repository) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	var user User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return dberr.Classify("lock user", err)
}
