package actor_test

import (
	"testing"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	t.Run("should build driver", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := actor.NewActor(id, []actor.Role{actor.Driver}, nil, "", "")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(id))
		assert.True(t, a.HasRole(actor.Driver))
		assert.False(t, a.HasRole(actor.Dispatcher))
		assert.Equal(t, actor.Unassociated, a.Association())
	})

	t.Run("should require roles", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), nil, nil, "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.UnknownRole}, nil, "", "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := actor.NewActor(kernel.UUID{}, []actor.Role{actor.Driver}, nil, "", "")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a actor.Actor

		require.ErrorIs(t, a.Validate(), actor.ErrActorIsNotConstructed)
	})
}

func TestRoleFromString(t *testing.T) {
	for _, role := range []actor.Role{actor.Driver, actor.Dispatcher, actor.Company} {
		parsed, err := actor.RoleFromString(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := actor.RoleFromString("admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestActor_CompanyContext(t *testing.T) {
	companyID := kernel.NewUUID()

	t.Run("company owns its jobs", func(t *testing.T) {
		a, _ := actor.NewActor(companyID, []actor.Role{actor.Company}, nil, "Acme Cabs", "")

		id, name := a.CompanyContext()

		require.NotNil(t, id)
		assert.True(t, id.IsEqual(companyID))
		assert.Equal(t, "Acme Cabs", name)
	})

	t.Run("associated dispatcher contributes its company", func(t *testing.T) {
		a, _ := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.Dispatcher}, &companyID, "Acme Cabs", actor.Associated)

		id, name := a.CompanyContext()

		require.NotNil(t, id)
		assert.True(t, id.IsEqual(companyID))
		assert.Equal(t, "Acme Cabs", name)
	})

	t.Run("pending dispatcher has no company", func(t *testing.T) {
		a, _ := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.Dispatcher}, &companyID, "Acme Cabs", actor.PendingAssociation)

		id, name := a.CompanyContext()

		assert.Nil(t, id)
		assert.Empty(t, name)
	})
}

func TestActor_Membership(t *testing.T) {
	companyID := kernel.NewUUID()
	a, err := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.Dispatcher}, &companyID, "Acme Cabs", actor.PendingAssociation)
	require.NoError(t, err)

	id, name := a.Membership()

	require.NotNil(t, id)
	assert.True(t, id.IsEqual(companyID))
	assert.Equal(t, "Acme Cabs", name)
}
