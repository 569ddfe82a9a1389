package lottery

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cashcashapp/cashcash-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens an in-memory sqlite database unique to the test. A single
// connection keeps gorm's pool from silently opening a second, empty
// in-memory database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.City{},
		&domain.Participation{},
		&domain.Winner{},
		&domain.Transaction{},
	))
	return db
}

// testClock is a mutable clock for crossing cycle boundaries.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func newTestService(t *testing.T) (*Service, *gorm.DB, *testClock) {
	t.Helper()
	db := testDB(t)
	clock := &testClock{t: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)} // Wednesday, 2026-W35
	return NewServiceWithClock(db, clock.Now), db, clock
}

func createUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	user := domain.User{Email: email, Username: strings.Split(email, "@")[0], Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCity(t *testing.T, db *gorm.DB, name, secret string) *domain.City {
	t.Helper()
	city := domain.City{
		ID:           uuid.NewString(),
		Name:         name,
		Slug:         strings.ToLower(name),
		IsActive:     true,
		QRCodeSecret: secret,
	}
	require.NoError(t, db.Create(&city).Error)
	return &city
}

// fund credits a user through the ledger so the conservation invariant holds
// from the very first entry.
func fund(t *testing.T, svc *Service, userID uint, amount float64) {
	t.Helper()
	_, err := svc.Deposit(context.Background(), userID, amount)
	require.NoError(t, err)
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) domain.User {
	t.Helper()
	var user domain.User
	require.NoError(t, db.First(&user, id).Error)
	return user
}

func reloadCity(t *testing.T, db *gorm.DB, id string) domain.City {
	t.Helper()
	var city domain.City
	require.NoError(t, db.Where("id = ?", id).First(&city).Error)
	return city
}

// assertBalanceConservation checks the core ledger invariant: the
// materialized balance equals the sum of the user's transaction amounts.
func assertBalanceConservation(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	var sum float64
	require.NoError(t, db.Model(&domain.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error)
	user := reloadUser(t, db, userID)
	assert.InDelta(t, sum, user.WalletBalance, 1e-9)
}
