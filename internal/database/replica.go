package database

import "gorm.io/gorm"

// readDB is an optional read-replica connection. When unset, reads fall
// back to the primary connection.
var readDB *gorm.DB

// SetReadDB installs a read-replica connection for read-heavy queries.
func SetReadDB(db *gorm.DB) {
	readDB = db
}

// GetReadDB returns the read-replica connection, or nil if none is configured.
func GetReadDB() *gorm.DB {
	return readDB
}
