// Package userrepo resolves user accounts from the users table. Accounts are
// owned by the identity service; this service only reads roles and company
// membership, and Save exists for provisioning and tests.
package userrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Roles       pq.StringArray `gorm:"type:text[];not null"`
	CompanyID   *uuid.UUID     `gorm:"type:uuid;index"`
	CompanyName string
	Association string `gorm:"not null;default:unassociated"`
}

func (UserDTO) TableName() string {
	return "users"
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get implements ports.UserDirectory.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (actor.Actor, error) {
	if err := id.Validate(); err != nil {
		return actor.Actor{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return actor.Actor{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return actor.Actor{}, errs.NewStoreFailureError("get user", err)
	}

	return toDomain(dto)
}

// Save inserts or replaces the account.
func (r *GormUserRepository) Save(ctx context.Context, a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
	if err != nil {
		return errs.NewStoreFailureError("save user", err)
	}
	return nil
}

func fromDomain(a actor.Actor) UserDTO {
	roles := make(pq.StringArray, 0, len(a.Roles()))
	for _, role := range a.Roles() {
		roles = append(roles, role.String())
	}

	companyID, companyName := a.Membership()
	return UserDTO{
		ID:          a.ID().Bytes(),
		Roles:       roles,
		CompanyID:   kernel.PointerBytes(companyID),
		CompanyName: companyName,
		Association: string(a.Association()),
	}
}

func toDomain(dto UserDTO) (actor.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return actor.Actor{}, err
	}

	roles := make([]actor.Role, 0, len(dto.Roles))
	for _, name := range dto.Roles {
		role, roleErr := actor.RoleFromString(name)
		if roleErr != nil {
			return actor.Actor{}, roleErr
		}
		roles = append(roles, role)
	}

	companyID, err := kernel.UUIDFromPointer(dto.CompanyID)
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, roles, companyID, dto.CompanyName, actor.Association(dto.Association))
}
