// Package actor models the acting user as resolved from the user directory.
// The dispatch engine never authenticates anyone; it only re-checks roles and
// ownership on an Actor the calling layer already resolved.
package actor

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is a capability granted to a user account.
type Role int

const (
	UnknownRole Role = iota
	Driver
	Dispatcher
	Company
)

var roleNames = map[Role]string{
	Driver:     "driver",
	Dispatcher: "dispatcher",
	Company:    "company",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// RoleFromString parses the lowercase role names used by the user directory.
func RoleFromString(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Association is a dispatcher's membership state with a company.
type Association string

const (
	Unassociated       Association = "unassociated"
	PendingAssociation Association = "pending"
	Associated         Association = "associated"
)

// Actor is an immutable view of a user: identity, roles and company context.
type Actor struct {
	id          kernel.UUID
	roles       []Role
	companyID   *kernel.UUID
	companyName string
	association Association
	guard       guard.ConstructorGuard
}

// NewActor validates and builds an Actor. At least one known role is required.
func NewActor(
	id kernel.UUID,
	roles []Role,
	companyID *kernel.UUID,
	companyName string,
	association Association,
) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if len(roles) == 0 {
		return Actor{}, errs.NewValueIsRequiredError("roles")
	}
	for _, r := range roles {
		if _, ok := roleNames[r]; !ok {
			return Actor{}, errs.NewValueIsInvalidErrorWithCause("roles", fmt.Errorf("%d is not a known role", r))
		}
	}
	if association == "" {
		association = Unassociated
	}

	return Actor{
		id:          id,
		roles:       slices.Clone(roles),
		companyID:   companyID,
		companyName: companyName,
		association: association,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Roles() []Role {
	return slices.Clone(a.roles)
}

func (a Actor) HasRole(role Role) bool {
	return slices.Contains(a.roles, role)
}

func (a Actor) Association() Association {
	return a.association
}

// CompanyContext returns the company a job created by this actor belongs to.
// A company account owns its own jobs; a dispatcher contributes the company it
// is associated with. Everyone else has no company context.
func (a Actor) CompanyContext() (*kernel.UUID, string) {
	if a.HasRole(Company) {
		id := a.id
		return &id, a.companyName
	}
	if a.HasRole(Dispatcher) && a.association == Associated && a.companyID != nil {
		id := *a.companyID
		return &id, a.companyName
	}
	return nil, ""
}

// Membership returns the company the account is linked to as stored in the
// directory, whatever its association state.
func (a Actor) Membership() (*kernel.UUID, string) {
	if a.companyID == nil {
		return nil, a.companyName
	}
	id := *a.companyID
	return &id, a.companyName
}
