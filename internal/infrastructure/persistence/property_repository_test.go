package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPropertyRepository creates a GormPropertyRepository with a mocked SQL connection
func newMockPropertyRepository(t *testing.T) (*GormPropertyRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPropertyRepository(gormDB), mock, mockDB
}

func testAddressJSON(t *testing.T) []byte {
	value, err := valueobject.MustNewAddress("Jakarta Selatan", "Tebet", "Jl. Tebet Barat No. 25").Value()
	require.NoError(t, err)
	return value.([]byte)
}

func TestNewGormPropertyRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormPropertyRepository_FindByID(t *testing.T) {
	t.Run("finds existing property", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		propertyID := uuid.New()
		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "slug", "address", "marketplace_enabled", "marketplace_status"}).
			AddRow(propertyID, ownerID, "Kos Melati", "kos-melati", testAddressJSON(t), false, "draft")

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(propertyID, 1).
			WillReturnRows(rows)

		prop, err := repo.FindByID(context.Background(), propertyID)

		assert.NoError(t, err)
		assert.NotNil(t, prop)
		assert.Equal(t, propertyID, prop.ID)
		assert.Equal(t, "Kos Melati", prop.Name)
		assert.Equal(t, "Jakarta Selatan", prop.Address.City())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent property", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		propertyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(propertyID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		prop, err := repo.FindByID(context.Background(), propertyID)

		assert.Error(t, err)
		assert.Nil(t, prop)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_FindByIDForOwner(t *testing.T) {
	t.Run("finds property within owner account", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		propertyID := uuid.New()
		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "slug", "marketplace_enabled", "marketplace_status"}).
			AddRow(propertyID, ownerID, "Kos Melati", "kos-melati", true, "published")

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE id = \$1 AND owner_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(propertyID, ownerID, 1).
			WillReturnRows(rows)

		prop, err := repo.FindByIDForOwner(context.Background(), propertyID, ownerID)

		assert.NoError(t, err)
		assert.NotNil(t, prop)
		assert.Equal(t, ownerID, prop.OwnerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's property reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		propertyID := uuid.New()
		otherOwner := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE id = \$1 AND owner_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(propertyID, otherOwner, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		prop, err := repo.FindByIDForOwner(context.Background(), propertyID, otherOwner)

		assert.Error(t, err)
		assert.Nil(t, prop)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_FindBySlug(t *testing.T) {
	t.Run("finds property by slug", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		propertyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "slug"}).
			AddRow(propertyID, uuid.New(), "Kos Melati", "kos-melati")

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE slug = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("kos-melati", 1).
			WillReturnRows(rows)

		prop, err := repo.FindBySlug(context.Background(), "kos-melati")

		assert.NoError(t, err)
		assert.Equal(t, "kos-melati", prop.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty slug short-circuits to not found", func(t *testing.T) {
		repo, _, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		prop, err := repo.FindBySlug(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, prop)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormPropertyRepository_FindListable(t *testing.T) {
	t.Run("returns only published marketplace properties", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "slug", "marketplace_enabled", "marketplace_status"}).
			AddRow(uuid.New(), uuid.New(), "Kos Melati", "kos-melati", true, "published").
			AddRow(uuid.New(), uuid.New(), "Kos Mawar", "kos-mawar", true, "published")

		mock.ExpectQuery(`SELECT \* FROM "properties" WHERE marketplace_enabled = \$1 AND marketplace_status = \$2 ORDER BY created_at ASC`).
			WithArgs(true, "published").
			WillReturnRows(rows)

		props, err := repo.FindListable(context.Background())

		assert.NoError(t, err)
		assert.Len(t, props, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_Save(t *testing.T) {
	t.Run("saves property", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		prop, err := property.NewProperty(uuid.New(), "Kos Melati",
			valueobject.MustNewAddress("Jakarta Selatan", "Tebet", "Jl. Tebet Barat No. 25"))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "properties" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), prop)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_Delete(t *testing.T) {
	t.Run("deletes property with its room types and rooms", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		propertyID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "rooms" WHERE property_id = \$1`).
			WithArgs(propertyID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "room_types" WHERE property_id = \$1`).
			WithArgs(propertyID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "properties" WHERE id = \$1`).
			WithArgs(propertyID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), propertyID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent property", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		propertyID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "rooms" WHERE property_id = \$1`).
			WithArgs(propertyID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "room_types" WHERE property_id = \$1`).
			WithArgs(propertyID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "properties" WHERE id = \$1`).
			WithArgs(propertyID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), propertyID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_CountByOwner(t *testing.T) {
	t.Run("counts owner properties", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "properties" WHERE owner_id = \$1`).
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByOwner(context.Background(), ownerID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_ExistsBySlug(t *testing.T) {
	t.Run("returns true when slug taken", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "properties" WHERE slug = \$1`).
			WithArgs("kos-melati").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySlug(context.Background(), "kos-melati")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when slug free", func(t *testing.T) {
		repo, mock, mockDB := newMockPropertyRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "properties" WHERE slug = \$1`).
			WithArgs("kos-anggrek").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsBySlug(context.Background(), "kos-anggrek")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPropertyRepository_InterfaceCompliance(t *testing.T) {
	var _ property.PropertyRepository = (*GormPropertyRepository)(nil)
}
