package migrations

import (
	"github.com/Rakhulsr/go-marketplace/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Comment{}, &models.Rating{}, &models.Cart{}, &models.CartItem{})
}

// MigrateRoleColumn replays the one-time schema change that split the legacy
// users.role string into the three capability flags. It is a no-op once the
// role column is gone, so the migrate command can run it unconditionally.
func MigrateRoleColumn(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.User{}, "role") {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(`UPDATE users
			SET is_admin = (role = 'admin'),
			    is_supplier = (role = 'supplier'),
			    is_customer = (role = 'customer' OR role = '' OR role IS NULL)`).Error
		if err != nil {
			return err
		}
		return tx.Migrator().DropColumn(&models.User{}, "role")
	})
}
