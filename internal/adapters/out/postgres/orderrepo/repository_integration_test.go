package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orderlifecycle/internal/adapters/out/postgres"
	"orderlifecycle/internal/adapters/out/postgres/migrations"
	"orderlifecycle/internal/adapters/out/postgres/orderrepo"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresOrderRepositoryIntegrationTestSuite runs the repository contract
// against a real PostgreSQL opened the way the service opens it.
type PostgresOrderRepositoryIntegrationTestSuite struct {
	repositoryContract
	container *postgres.PostgresContainer
}

func (s *PostgresOrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := postgres_adapter.Open(ctx, postgres_adapter.Settings{
		Driver: postgres_adapter.DriverPostgres,
		URL:    connStr,
	}, nil)
	s.Require().NoError(err)

	s.db = db
	s.reset = func() error { return db.Exec("TRUNCATE TABLE orders").Error }
}

func (s *PostgresOrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		s.Require().NoError(postgres_adapter.Close(s.db))
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresOrderRepositoryIntegrationTestSuite) TestMigrations_AreIdempotent() {
	s.Require().NoError(migrations.Run(s.db))

	s.True(s.db.Migrator().HasIndex(&orderrepo.OrderDTO{}, migrations.AvailableIndex))

	var predicate string
	s.Require().NoError(s.db.Raw("SELECT indexdef FROM pg_indexes WHERE indexname = ?",
		migrations.AvailableIndex).Scan(&predicate).Error)
	s.Contains(predicate, "WHERE (assigned_to IS NULL)")
}

func TestPostgresOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test requires Docker")
	}
	suite.Run(t, new(PostgresOrderRepositoryIntegrationTestSuite))
}
