package jobreader_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/jobreader"
	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(*job.Job) {}

type JobReaderIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	gormDB    *gorm.DB
	sqlxDB    *sqlx.DB
	reader    *jobreader.SqlxJobReader
	writer    *jobrepo.GormJobRepository
	now       time.Time
}

func (suite *JobReaderIntegrationTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.gormDB, err = gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.gormDB.AutoMigrate(&jobrepo.JobDTO{}))

	suite.sqlxDB, err = sqlx.Connect("postgres", dsn)
	suite.Require().NoError(err)

	suite.reader = jobreader.NewSqlxJobReader(suite.sqlxDB)
	suite.writer = jobrepo.NewGormJobRepository(suite.gormDB, noopTracker{})
}

func (suite *JobReaderIntegrationTestSuite) TearDownSuite() {
	if suite.sqlxDB != nil {
		_ = suite.sqlxDB.Close()
	}
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *JobReaderIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.gormDB.Exec("TRUNCATE TABLE jobs").Error)
	suite.now = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *JobReaderIntegrationTestSuite) original(owner actor.Actor, isPublic bool) *job.Job {
	suite.now = suite.now.Add(time.Minute)
	j, err := job.NewOriginal(kernel.NewUUID(), job.TripDetails{Title: "Run " + suite.now.Format("15:04")},
		isPublic, job.OwnerFromActor(owner), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.writer.Add(context.Background(), j))
	return j
}

func (suite *JobReaderIntegrationTestSuite) TestFindByID() {
	dispatcher, _ := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.Dispatcher}, nil, "", "")
	j := suite.original(dispatcher, true)

	got, err := suite.reader.FindByID(context.Background(), j.ID())

	suite.Require().NoError(err)
	suite.True(got.ID.IsEqual(j.ID()))
	suite.Equal(job.Original, got.Type)
	suite.Equal(job.Pending, got.Status)
	suite.True(got.IsPublic)
	suite.Equal(j.Details().Title, got.Details.Title)
	suite.Nil(got.OriginalJobID)
	suite.Empty(got.OfferID)

	_, err = suite.reader.FindByID(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *JobReaderIntegrationTestSuite) TestFind_Filters() {
	ctx := context.Background()
	companyID := kernel.NewUUID()
	companyDispatcher, _ := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.Dispatcher}, &companyID, "Acme", actor.Associated)
	loneDispatcher, _ := actor.NewActor(kernel.NewUUID(), []actor.Role{actor.Dispatcher}, nil, "", "")

	first := suite.original(companyDispatcher, true)
	second := suite.original(companyDispatcher, false)
	suite.original(loneDispatcher, true)

	driverID := kernel.NewUUID()
	offer, err := job.NewCopiedOffer(second, kernel.NewUUID(), job.DriverOnly(driverID), suite.now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.writer.Add(ctx, offer))

	all, err := suite.reader.Find(ctx, ports.JobFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 4)
	suite.True(all[0].ID.IsEqual(offer.ID()), "newest first")

	byCompany, err := suite.reader.Find(ctx, ports.JobFilter{CompanyID: &companyID})
	suite.Require().NoError(err)
	suite.Len(byCompany, 3, "offers inherit the company of their original")

	public := true
	original := job.Original
	publicOriginals, err := suite.reader.Find(ctx, ports.JobFilter{IsPublic: &public, Type: &original})
	suite.Require().NoError(err)
	suite.Len(publicOriginals, 2)

	creatorID := companyDispatcher.ID()
	pending := job.Pending
	mine, err := suite.reader.Find(ctx, ports.JobFilter{CreatedByID: &creatorID, Status: &pending})
	suite.Require().NoError(err)
	suite.Len(mine, 2)
	suite.True(mine[0].ID.IsEqual(second.ID()))
	suite.True(mine[1].ID.IsEqual(first.ID()))

	driverOffers, err := suite.reader.Find(ctx, ports.JobFilter{AssignedDriverID: &driverID})
	suite.Require().NoError(err)
	suite.Require().Len(driverOffers, 1)
	suite.Equal(offer.OfferID().String(), driverOffers[0].OfferID)

	secondID := second.ID()
	siblings, err := suite.reader.Find(ctx, ports.JobFilter{OriginalJobID: &secondID})
	suite.Require().NoError(err)
	suite.Len(siblings, 1)

	page, err := suite.reader.Find(ctx, ports.JobFilter{Limit: 2, Offset: 3})
	suite.Require().NoError(err)
	suite.Len(page, 1)
}

func TestJobReaderIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(JobReaderIntegrationTestSuite))
}
