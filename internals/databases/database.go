package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"registrar_backend/internals/configs"
	"registrar_backend/internals/features/registrar/model"
)

// ConnectDB opens the postgres pool. PreferSimpleProtocol keeps it usable behind PgBouncer.
func ConnectDB(cfg configs.Config, log *zap.Logger) (*gorm.DB, error) {
	log.Info("connecting to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	db, err := Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), configs.NewGormLogger(log, cfg.SlowQuery))
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	log.Info("DB connected")
	return db, nil
}

// Open applies the gorm settings the repositories depend on: no implicit transaction
// per write, and driver errors translated to gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, logger gormLogger.Interface) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:                 logger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates or updates every registrar table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
