package database

import "github.com/RubenLpc/BucovinaStay-backend/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Listing{},
		&models.Review{},
		&models.HostProfile{},
		&models.AdminSettings{},
		&models.HostActivityEvent{},
		&models.HostMessage{},
		&models.Favorite{},
		&models.HostSettings{},
	}
}
