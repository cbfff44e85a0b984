// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
	"github.com/thicknavyrain/brockwell-park-noise/internal/results"
)

// Interface abstracts the underlying database implementation and defines the
// operations available on the results store.
type Interface interface {
	Open() error
	Save(rs []results.Result) error
	GetAllResults() ([]results.Result, error)
	GetResultsInRange(start, end time.Time) ([]results.Result, error)
	Close() error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided settings.
// Returns nil when no store is enabled.
func New(settings *conf.Settings) Interface {
	if settings.Output.SQLite.Enabled {
		return &SQLiteStore{Settings: settings}
	}
	return nil
}

// Save stores a batch of results as a single transaction in the database.
func (ds *DataStore) Save(rs []results.Result) error {
	if ds.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	tx := ds.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("starting transaction: %w", tx.Error)
	}

	// Roll back the transaction if a panic occurs
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i := range rs {
		if err := tx.Create(&rs[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("saving result: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetAllResults retrieves all stored results, ordered by period start.
func (ds *DataStore) GetAllResults() ([]results.Result, error) {
	var rs []results.Result
	if err := ds.DB.Order("start").Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("getting all results: %w", err)
	}
	return rs, nil
}

// GetResultsInRange retrieves results whose period start falls within
// [start, end), ordered by period start.
func (ds *DataStore) GetResultsInRange(start, end time.Time) ([]results.Result, error) {
	var rs []results.Result
	err := ds.DB.Where("start >= ? AND start < ?", start, end).
		Order("start").
		Find(&rs).Error
	if err != nil {
		return nil, fmt.Errorf("getting results in range: %w", err)
	}
	return rs, nil
}

// Close closes the database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return fmt.Errorf("getting underlying database: %w", err)
	}
	return sqlDB.Close()
}

// performAutoMigration runs GORM auto-migration for the results model.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&results.Result{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}
	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
// Output goes to stderr so stdout stays reserved for results.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      false,
		},
	)
}
