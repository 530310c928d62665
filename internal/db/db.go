package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/utils"
)

type Service struct {
	db       *gorm.DB
	log      *logger.Logger
	postgres bool
}

// NewService connects to the database named by DATABASE_URL. A sqlite://
// or file: URL opens an embedded sqlite database; anything else is treated
// as a Postgres DSN, mirroring how the front-end deployments configure it.
func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	dsn := utils.GetEnv("DATABASE_URL", "", log)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	var dialector gorm.Dialector
	isPostgres := false
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "file:"):
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
		isPostgres = true
	}

	serviceLog.Info("Connecting to database...", "postgres", isPostgres)
	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(utils.GetEnvAsInt("DB_MAX_OPEN_CONNS", 10, log))
	sqlDB.SetMaxIdleConns(utils.GetEnvAsInt("DB_MAX_IDLE_CONNS", 5, log))

	return &Service{db: gdb, log: serviceLog, postgres: isPostgres}, nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}

func (s *Service) IsPostgres() bool {
	return s.postgres
}

// AutoMigrateAll creates the schema directly from the models. Used for
// sqlite; Postgres deployments run the versioned migrations instead.
func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(
		&types.Release{},
		&types.Store{},
		&types.Listing{},
	); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
