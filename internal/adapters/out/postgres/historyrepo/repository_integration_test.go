package historyrepo_test

import (
	"context"
	"testing"
	"time"

	"ordertrack/internal/adapters/out/postgres/historyrepo"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// HistoryRepositoryIntegrationTestSuite verifies audit trail persistence
// against a real PostgreSQL instance.
type HistoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *historyrepo.GormHistoryRepository
}

func (suite *HistoryRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&historyrepo.EntryDTO{}))
}

func (suite *HistoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_history").Error)
	suite.repository = historyrepo.NewGormHistoryRepository(suite.db)
}

func (suite *HistoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *HistoryRepositoryIntegrationTestSuite) newEntry(
	orderID kernel.UUID, status order.Status, seq int64, metadata history.Metadata,
) *history.Entry {
	entry, err := history.NewEntry(orderID, status, seq, kernel.NewUUID(), actor.RoleAdmin, metadata)
	suite.Require().NoError(err)
	return entry
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestAppendAndList_RoundTripsMetadata() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	entry := suite.newEntry(orderID, order.Assigned, 1, history.Metadata{
		Source:        "ADMIN_ASSIGN",
		PrevStatus:    "CREATED",
		AssignedAgent: agentID.String(),
		IP:            "203.0.113.9",
		UserAgent:     "integration-test",
	})
	suite.Require().NoError(suite.repository.Append(ctx, entry))

	entries, err := suite.repository.ListByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)

	loaded := entries[0]
	suite.True(loaded.ID().IsEqual(entry.ID()))
	suite.Equal(order.Assigned, loaded.Status())
	suite.Equal(int64(1), loaded.Seq())
	suite.Equal(actor.RoleAdmin, loaded.Role())
	suite.Equal("ADMIN_ASSIGN", loaded.Metadata().Source)
	suite.Equal("CREATED", loaded.Metadata().PrevStatus)
	suite.Equal(agentID.String(), loaded.Metadata().AssignedAgent)
	suite.Equal("203.0.113.9", loaded.Metadata().IP)
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestListByOrderID_OrderedBySeq() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	// Append out of order; the listing must come back by seq.
	for _, seq := range []int64{2, 0, 1} {
		status := order.Created
		if seq > 0 {
			status = order.Assigned
		}
		entry := suite.newEntry(orderID, status, seq, history.Metadata{Source: "DRIVER_UPDATE"})
		suite.Require().NoError(suite.repository.Append(ctx, entry))
	}

	entries, err := suite.repository.ListByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	for i, entry := range entries {
		suite.Equal(int64(i), entry.Seq())
	}
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestListByOrderID_ScopedToOrder() {
	ctx := context.Background()
	orderA := kernel.NewUUID()
	orderB := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Append(ctx,
		suite.newEntry(orderA, order.Created, 0, history.Metadata{Source: "MERCHANT_CREATE"})))
	suite.Require().NoError(suite.repository.Append(ctx,
		suite.newEntry(orderB, order.Created, 0, history.Metadata{Source: "MERCHANT_CREATE"})))

	entries, err := suite.repository.ListByOrderID(ctx, orderA)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.True(entries[0].OrderID().IsEqual(orderA))
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestListByOrderID_EmptyTrail() {
	entries, err := suite.repository.ListByOrderID(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func TestHistoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryRepositoryIntegrationTestSuite))
}
