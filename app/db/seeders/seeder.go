package seeders

import (
	"github.com/Rakhulsr/go-marketplace/app/db/fakers"
	"gorm.io/gorm"
)

// DBSeed plants a two-level category tree with a handful of products under
// each node, enough to exercise the subtree listing by hand.
func DBSeed(db *gorm.DB) error {
	for i := 0; i < 3; i++ {
		root := fakers.CategoryFaker(nil)
		if err := db.Create(root).Error; err != nil {
			return err
		}

		for j := 0; j < 2; j++ {
			child := fakers.CategoryFaker(root)
			if err := db.Create(child).Error; err != nil {
				return err
			}

			for k := 0; k < 3; k++ {
				if err := db.Create(fakers.ProductFaker(db, child)).Error; err != nil {
					return err
				}
			}
		}

		if err := db.Create(fakers.ProductFaker(db, root)).Error; err != nil {
			return err
		}
	}

	return nil
}
