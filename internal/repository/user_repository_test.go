package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/rbac-task-api/internal/database"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/testutil"
	"github.com/yukikurage/rbac-task-api/internal/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}), logger.Silent)
	require.NoError(t, err)
	return db, mock
}

func TestGormUserRepository_Create_Postgres(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WithArgs("alice@example.com", "hash", "Alice", "user", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	user := &models.User{
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FullName:     "Alice",
		Role:         models.RoleUser,
	}
	require.NoError(t, repo.Create(user))
	assert.Equal(t, uint64(42), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByEmail_NotFound_Postgres(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := repo.FindByEmail("ghost@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Update_WritesOnlyPresentColumns_Postgres(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "full_name"=$1,"updated_at"=$2 WHERE id = $3`)).
		WithArgs("Alice Smith", sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "Alice Smith"
	err := repo.Update(&models.User{ID: 7}, UserChanges{FullName: &name})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Update_NoChangesSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Update(&models.User{ID: 7}, UserChanges{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Sqlite(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)

	alice := testutil.CreateUser(t, db, "alice@example.com", models.RoleAdmin)
	bob := testutil.CreateUser(t, db, "bob@example.com", models.RoleUser)
	testutil.CreateUser(t, db, "carol@example.com", models.RoleManager)

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", found.Email)

		_, err = repo.FindByID(999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("find by email", func(t *testing.T) {
		found, err := repo.FindByEmail("alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, found.ID)
		assert.Equal(t, models.RoleAdmin, found.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(&models.User{
			Email:        "alice@example.com",
			PasswordHash: "hash",
			FullName:     "Another Alice",
			Role:         models.RoleUser,
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("update", func(t *testing.T) {
		email := "robert@example.com"
		hash := "newhash"
		require.NoError(t, repo.Update(bob, UserChanges{Email: &email, PasswordHash: &hash}))

		found, err := repo.FindByID(bob.ID)
		require.NoError(t, err)
		assert.Equal(t, email, found.Email)
		assert.Equal(t, hash, found.PasswordHash)
		assert.Equal(t, "bob@example.com", found.FullName)
	})

	t.Run("list", func(t *testing.T) {
		users, err := repo.List(utils.PaginationParams{Skip: 1, Limit: 5})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, bob.ID, users[0].ID)
	})

	t.Run("count by role", func(t *testing.T) {
		count, err := repo.CountByRole(models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.CountByRole(models.RoleManager)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
