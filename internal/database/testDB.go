package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "secure-share-backend/internal/model"
	"secure-share-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users and seeded share entries
var (
	TestBasicUser m.User
	TestDevUser   m.User

	// Plain passwords matching the seeded hashes
	TestBasicPassword = "test123"
	TestDevPassword   = "dev123"

	// Access code registered during seeding
	TestSeedCode  = "7BL29Y"
	TestSeedEntry m.CodeEntry
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed the default demo accounts and one registered code
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts the demo accounts and a sample code entry if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	basicHash, err := utilities.HashPassword(TestBasicPassword)
	if err != nil {
		return err
	}
	devHash, err := utilities.HashPassword(TestDevPassword)
	if err != nil {
		return err
	}

	users := []m.User{
		{ID: uuid.New(), Email: "test@test.com", Password: basicHash},
		{ID: uuid.New(), Email: utilities.DefaultAdminEmail, Password: devHash},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	TestBasicUser = users[0]
	TestDevUser = users[1]

	ownerID := TestBasicUser.ID
	entry := m.CodeEntry{
		Code:    TestSeedCode,
		OwnerID: &ownerID,
		Tags:    pq.StringArray{"code_" + TestSeedCode},
		Files: []m.FileDescriptor{
			{
				Code:     TestSeedCode,
				Position: 0,
				URL:      "https://storage.googleapis.com/secure-share/1700000000000_report.pdf",
				PublicID: "1700000000000_report.pdf",
				Filename: "report.pdf",
				Size:     20480,
				Kind:     m.KindFile,
				Format:   "pdf",
			},
			{
				Code:     TestSeedCode,
				Position: 1,
				Kind:     m.KindText,
				Content:  "meet at 10am",
			},
		},
	}
	if err := db.Create(&entry).Error; err != nil {
		return err
	}
	TestSeedEntry = entry

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.First(&TestBasicUser, "email = ?", "test@test.com").Error; err != nil {
		return err
	}
	if err := db.First(&TestDevUser, "email = ?", utilities.DefaultAdminEmail).Error; err != nil {
		return err
	}
	return db.Preload("Files", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).First(&TestSeedEntry, "code = ?", TestSeedCode).Error
}
