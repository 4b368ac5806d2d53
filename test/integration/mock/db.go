package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database migrated with the given models.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	schema string
}

// NewDb opens the shared database on first use and returns it afterwards.
func NewDb(schema string, models map[string]any) *Db {
	once.Do(func() {
		db = open(schema, models)
	})
	return db
}

func open(schema string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file:"+schema+"?mode=memory&cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		schema: schema,
		models: models,
	}

	if err := newDbMock.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB deletes every row of every registered table.
func (d *Db) ClearDB() error {
	for _, table := range d.tables() {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Count returns the number of rows in table matching every column in criteria.
func (d *Db) Count(table string, criteria map[string]any) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	query := d.DbConn.Model(model)
	for column, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for _, table := range d.tables() {
		modelList = append(modelList, d.models[table])
	}

	if err := d.DbConn.Migrator().DropTable(modelList...); err != nil {
		return err
	}
	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}
	return nil
}

func (d *Db) tables() []string {
	names := make([]string, 0, len(d.models))
	for name := range d.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
