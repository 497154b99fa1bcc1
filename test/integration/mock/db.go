//go:build integration

package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string
}

// NewDb opens a shared in-memory sqlite database and creates one table per
// model. Tables are listed in creation order and cleared in reverse.
func NewDb(tables []string, models map[string]any) *Db {
	once.Do(
		func() {
			db = open(tables, models)
		},
	)

	return db
}

func open(tables []string, models map[string]any) *Db {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
		order:  tables,
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to create tables. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) init() error {
	for _, table := range d.order {
		model, ok := d.models[table]
		if !ok {
			return fmt.Errorf("no model registered for table %s", table)
		}
		if err := d.DbConn.AutoMigrate(model); err != nil {
			return err
		}
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

// ClearDB deletes every row while keeping the schema.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		model := d.models[d.order[i]]
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", d.order[i], err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
