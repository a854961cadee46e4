package job

import (
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
)

// Owner identifies who created a job and which company it belongs to.
type Owner struct {
	CreatedByID *kernel.UUID
	CompanyID   *kernel.UUID
	CompanyName string
}

// OwnerFromActor captures the creator and its company context.
func OwnerFromActor(a actor.Actor) Owner {
	id := a.ID()
	companyID, companyName := a.CompanyContext()
	return Owner{CreatedByID: &id, CompanyID: companyID, CompanyName: companyName}
}

// IsOwnedBy reports whether the actor created the job or is the company
// account that owns it.
func (o Owner) IsOwnedBy(a actor.Actor) bool {
	id := a.ID()
	if id.SameAs(o.CreatedByID) {
		return true
	}
	return a.HasRole(actor.Company) && id.SameAs(o.CompanyID)
}
