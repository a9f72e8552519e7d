package service

import (
	"context"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rolePtr(r models.Role) *models.Role { return &r }

func TestUserService_PatchUserGuards(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()
	self := st.admin.UserID

	_, err := st.users.PatchUser(ctx, self, self, UserPatch{Disabled: boolPtr(true)})
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = st.users.PatchUser(ctx, self, self, UserPatch{Role: rolePtr(models.RoleHost)})
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = st.users.PatchUser(ctx, self, self, UserPatch{})
	assertAppErrorCode(t, err, models.CodeValidation)

	guest := st.guest(t)
	_, err = st.users.PatchUser(ctx, self, guest, UserPatch{Role: rolePtr("superuser")})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = st.users.PatchUser(ctx, self, 4242, UserPatch{Disabled: boolPtr(true)})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestUserService_LastAdminCannotBeRemoved(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()

	second := testutil.CreateUser(t, st.db, "Admin Doi", models.RoleAdmin)

	u, err := st.users.PatchUser(ctx, st.admin.UserID, second.ID, UserPatch{Role: rolePtr(models.RoleHost)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleHost, u.Role)
	_, err = st.profileRepo.GetByUserID(ctx, second.ID)
	require.NoError(t, err, "demotion to host creates the profile")

	_, err = st.users.PatchUser(ctx, st.admin.UserID, second.ID, UserPatch{Role: rolePtr(models.RoleAdmin)})
	require.NoError(t, err)
	_, err = st.users.PatchUser(ctx, second.ID, st.admin.UserID, UserPatch{Disabled: boolPtr(true)})
	require.NoError(t, err)

	// second is now the only active admin.
	_, err = st.users.PatchUser(ctx, OperatorID, second.ID, UserPatch{Disabled: boolPtr(true)})
	assertAppErrorCode(t, err, models.CodeForbidden)
	_, err = st.users.PatchUser(ctx, OperatorID, second.ID, UserPatch{Role: rolePtr(models.RoleGuest)})
	assertAppErrorCode(t, err, models.CodeForbidden)

	n, err := repositoryAdmins(st)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func repositoryAdmins(st *stack) (int64, error) {
	var n int64
	err := st.db.Model(&models.User{}).Where("role = ? AND disabled = ?", models.RoleAdmin, false).Count(&n).Error
	return n, err
}

func TestUserService_BecomeHost(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()
	guest := testutil.CreateUser(t, st.db, "I", models.RoleGuest)

	u, err := st.users.BecomeHost(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleHost, u.Role)

	p, err := st.profileRepo.GetByUserID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultHostDisplayName, p.DisplayName, "one-letter names fall back to the default")

	again, err := st.users.BecomeHost(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleHost, again.Role)

	admin, err := st.users.BecomeHost(ctx, st.admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role, "admins keep their role")
}
