//go:build databases.mysql || databases.all
// +build databases.mysql databases.all

package database

import (
	"database/sql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"time"
)

type MySql struct {
	Dialect
}

func (*MySql) Load(url string) gorm.Dialector {
	return mysql.Open(url)
}

func (*MySql) Configure(db *sql.DB) {
	db.SetConnMaxLifetime(time.Second * 10)
	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(10)
}

func (*MySql) DefaultUrl() string {
	return "ballot:ballot@/ballot?charset=utf8mb4&parseTime=True"
}

func init() {
	dialects["mysql"] = &MySql{}
}
