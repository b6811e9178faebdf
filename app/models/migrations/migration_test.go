package migrations_test

import (
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/models/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestMigrateRoleColumn_BackfillsFlags(t *testing.T) {
	db := openDB(t)
	require.NoError(t, migrations.AutoMigrate(db))

	// Recreate the legacy schema state: a role column still present.
	// Quote the column name so the sqlite driver's table-rebuild parser can
	// find it again when MigrateRoleColumn drops the column.
	require.NoError(t, db.Exec("ALTER TABLE users ADD COLUMN `role` varchar(20)").Error)
	insert := `INSERT INTO users (id, first_name, last_name, username, email, password, role, is_active)
		VALUES (?, 'T', 'U', ?, ?, 'x', ?, 1)`
	require.NoError(t, db.Exec(insert, "u1", "alice", "alice@example.com", "admin").Error)
	require.NoError(t, db.Exec(insert, "u2", "bob", "bob@example.com", "supplier").Error)
	require.NoError(t, db.Exec(insert, "u3", "carol", "carol@example.com", "customer").Error)

	require.NoError(t, migrations.MigrateRoleColumn(db))

	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	require.Len(t, users, 3)

	assert.True(t, users[0].IsAdmin)
	assert.False(t, users[0].IsSupplier)

	assert.True(t, users[1].IsSupplier)
	assert.False(t, users[1].IsAdmin)

	assert.True(t, users[2].IsCustomer)
	assert.False(t, users[2].IsAdmin)
	assert.False(t, users[2].IsSupplier)

	assert.False(t, db.Migrator().HasColumn(&models.User{}, "role"))
}

func TestMigrateRoleColumn_NoOpWithoutColumn(t *testing.T) {
	db := openDB(t)
	require.NoError(t, migrations.AutoMigrate(db))

	require.NoError(t, migrations.MigrateRoleColumn(db))
	require.NoError(t, migrations.MigrateRoleColumn(db))
}
