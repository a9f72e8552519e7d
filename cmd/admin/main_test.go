package main

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PromoteDemoteAndList(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	first := testutil.CreateUser(t, db, "Ana Popescu", models.RoleAdmin)
	guest := testutil.CreateUser(t, db, "Ion Rusu", models.RoleGuest)

	var out bytes.Buffer
	require.NoError(t, run(ctx, db, []string{"promote", guest.Email}, &out))
	assert.Contains(t, out.String(), "is now admin")

	var got models.User
	require.NoError(t, db.First(&got, guest.ID).Error)
	assert.Equal(t, models.RoleAdmin, got.Role)

	out.Reset()
	require.NoError(t, run(ctx, db, []string{"promote", strconv.Itoa(int(guest.ID))}, &out))
	assert.Contains(t, out.String(), "already an admin")

	out.Reset()
	require.NoError(t, run(ctx, db, []string{"list-admins"}, &out))
	assert.Contains(t, out.String(), first.Email)
	assert.Contains(t, out.String(), guest.Email)

	out.Reset()
	require.NoError(t, run(ctx, db, []string{"demote", strconv.Itoa(int(first.ID))}, &out))
	assert.Contains(t, out.String(), "is now guest")
}

func TestRun_DemoteLastAdminRefused(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	admin := testutil.CreateUser(t, db, "Singur Admin", models.RoleAdmin)

	var out bytes.Buffer
	err := run(context.Background(), db, []string{"demote", admin.Email}, &out)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeForbidden))

	var got models.User
	require.NoError(t, db.First(&got, admin.ID).Error)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestRun_Errors(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	var out bytes.Buffer

	assert.Error(t, run(context.Background(), db, nil, &out))
	assert.Error(t, run(context.Background(), db, []string{"promote"}, &out))
	assert.Error(t, run(context.Background(), db, []string{"frobnicate"}, &out))

	err := run(context.Background(), db, []string{"promote", "404"}, &out)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
