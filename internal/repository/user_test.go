package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		userID       uint
		mockBehavior func()
		expectedUser *models.User
		expectedCode string
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "name", "email", "role"}).
					AddRow(1, "Ioana Popescu", "ioana@example.ro", "host")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Name: "Ioana Popescu", Role: models.RoleHost},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedCode: models.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedCode != "" {
				assert.True(t, models.HasCode(err, tt.expectedCode), "got %v", err)
			} else if assert.NoError(t, err) && assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Name, user.Name)
				assert.Equal(t, tt.expectedUser.Role, user.Role)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdateKeepingAdmin_SQLShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET .* WHERE id = \$\d+ AND \(?EXISTS \(SELECT 1 FROM users o WHERE o\.id <> \$\d+ AND o\.role = \$\d+ AND o\.disabled = \$\d+ AND o\.deleted_at IS NULL\)\)? AND "users"\."deleted_at" IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.UpdateKeepingAdmin(context.Background(), 7, map[string]any{"role": models.RoleHost})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_LastAdminGuard(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, "Admin Unu", models.RoleAdmin)
	b := testutil.CreateUser(t, db, "Admin Doi", models.RoleAdmin)

	ok, err := repo.UpdateKeepingAdmin(ctx, a.ID, map[string]any{"role": models.RoleHost})
	require.NoError(t, err)
	assert.True(t, ok, "another admin exists")

	ok, err = repo.UpdateKeepingAdmin(ctx, b.ID, map[string]any{"disabled": true})
	require.NoError(t, err)
	assert.False(t, ok, "b is the last active admin")

	n, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Disabled)
}

func TestUserRepository_CreateDuplicateAndLookup(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Name: "Mihai", Email: "mihai@example.ro", Password: "x", Role: models.RoleGuest}
	require.NoError(t, repo.Create(ctx, u))

	err := repo.Create(ctx, &models.User{Name: "Mihai 2", Email: "mihai@example.ro", Password: "x", Role: models.RoleGuest})
	assert.True(t, models.HasCode(err, models.CodeDuplicate), "got %v", err)

	found, err := repo.GetByEmail(ctx, "  MIHAI@example.ro ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.ro")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, total, err := repo.List(ctx, models.RoleGuest, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)

	err = repo.UpdateFields(ctx, 9999, map[string]any{"disabled": true})
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
