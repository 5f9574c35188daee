package database

import (
	"database/sql"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type Sqlite struct {
	Dialect
}

func (*Sqlite) Load(url string) gorm.Dialector {
	return sqlite.Open(url)
}

// sqlite serializes writers anyway, so one connection avoids "database is locked" under load.
func (*Sqlite) Configure(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
}

func (*Sqlite) DefaultUrl() string {
	return "ballot.db"
}

func init() {
	dialects["sqlite"] = &Sqlite{}
}
