package store

import (
	"fmt"
	"strings"

	"invoicing-backend/internal/config"
	"invoicing-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sessionKey = "store.session"

// Open connects with the configured driver and creates the schema.
func Open(cfg config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.PostgresDSN())
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	return InitDB(dialector, logLevel)
}

// InitDB opens the dialector and auto-migrates every entity.
func InitDB(dialector gorm.Dialector, logLevel logger.LogLevel) (*gorm.DB, error) {
	d, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Purchase{},
		&models.Invoice{},
		&models.BillingDetails{},
		&models.Charge{},
	)
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off per
// connection by default.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") || strings.Contains(path, "_fk=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Session scopes a gorm session to each request's context. Handlers fetch it
// with DB; it is dropped when the request ends.
func Session(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, db.WithContext(c.Request.Context()))
		c.Next()
	}
}

// DB returns the request's session. It panics when Session is not installed.
func DB(c *gin.Context) *gorm.DB {
	return c.MustGet(sessionKey).(*gorm.DB)
}
