package orderrepo_test

import (
	"testing"

	"orderlifecycle/internal/adapters/out/postgres/orderrepo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type SQLiteOrderRepositoryTestSuite struct {
	repositoryContract
}

func (s *SQLiteOrderRepositoryTestSuite) SetupSuite() {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	s.db = db
	s.reset = func() error { return db.Exec("DELETE FROM orders").Error }
}

func (s *SQLiteOrderRepositoryTestSuite) TearDownSuite() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func TestSQLiteOrderRepository(t *testing.T) {
	suite.Run(t, new(SQLiteOrderRepositoryTestSuite))
}
