package database

import (
	"database/sql"
	"fmt"
	"github.com/lordralex/ballot/api/env"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sort"
	"sync"
)

// Dialect adapts one SQL backend. Dialects register themselves in init, optionally behind build tags.
type Dialect interface {
	Load(url string) gorm.Dialector
	Configure(db *sql.DB)
	DefaultUrl() string
}

var dialects = make(map[string]Dialect)

var databaseConn *gorm.DB
var locker sync.Mutex

// Get returns the process-wide connection, opening it from the database.* settings on first use.
func Get() (*gorm.DB, error) {
	var err error

	locker.Lock()
	defer locker.Unlock()
	if databaseConn == nil {
		databaseConn, err = Open(env.GetOr("database.dialect", "sqlite"), env.Get("database.url"), env.GetBool("database.debug"))
	}

	return databaseConn, err
}

// Open creates a new connection that is not shared through Get.
func Open(dialect, url string, debug bool) (*gorm.DB, error) {
	d, exists := dialects[dialect]
	if !exists {
		return nil, fmt.Errorf("unknown database dialect %q (available: %v)", dialect, Available())
	}

	if url == "" {
		url = d.DefaultUrl()
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(d.Load(url), &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}

	sqlDb, err := db.DB()
	if err != nil {
		return nil, err
	}
	d.Configure(sqlDb)
	return db, nil
}

func Close() error {
	locker.Lock()
	defer locker.Unlock()

	if databaseConn == nil {
		return nil
	}
	sqlDb, err := databaseConn.DB()
	databaseConn = nil
	if err != nil {
		return err
	}
	return sqlDb.Close()
}

func Available() []string {
	names := make([]string, 0, len(dialects))
	for k := range dialects {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
