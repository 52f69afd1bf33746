// database/bootstrap.go
package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrosim/entities"
)

// OpenSQLite opens the harvest ledger. The default path is a shared in-memory
// database, so nothing outlives the process unless DB_PATH names a file.
func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	return db
}

// Open is OpenSQLite without the fatal exit; tests and the CLI use it directly.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&entities.HarvestLog{}); err != nil {
		return nil, err
	}
	log.Printf("[db] ledger ready at %s", path)
	return db, nil
}
