package promotion

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xeroscommerce/pricing-service/pkg/money"
)

// The production schema uses text[]/bigint[]; sqlite has no array type, so the
// fixture stores the pq literal form in TEXT columns, which the row structs
// scan back through the same pq array types.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`CREATE TABLE promo_catalogs (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		is_active BOOLEAN NOT NULL,
		target_client_type TEXT,
		target_customer_ids TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	require.NoError(t, conn.Exec(`CREATE TABLE promo_items (
		id INTEGER PRIMARY KEY,
		catalog_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		promo_price NUMERIC NOT NULL,
		allowed_customer_numbers TEXT,
		created_at DATETIME
	)`).Error)
	return conn
}

type catalogFixture struct {
	id                int64
	start, end        time.Time
	active            bool
	targetClientType  *string
	targetCustomerIDs []int64
}

func mustInsertCatalog(t *testing.T, db *gorm.DB, f catalogFixture) {
	t.Helper()
	err := db.Exec(
		`INSERT INTO promo_catalogs (id, title, start_date, end_date, is_active, target_client_type, target_customer_ids)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.id, "Spring Push", f.start, f.end, f.active, f.targetClientType, int64ArrayLiteral(f.targetCustomerIDs),
	).Error
	require.NoError(t, err)
}

func mustInsertItem(t *testing.T, db *gorm.DB, id, catalogID, productID int64, price string, allowed ...string) {
	t.Helper()
	err := db.Exec(
		`INSERT INTO promo_items (id, catalog_id, product_id, promo_price, allowed_customer_numbers)
		 VALUES (?, ?, ?, ?, ?)`,
		id, catalogID, productID, money.MustParse(price), stringArrayLiteral(allowed),
	).Error
	require.NoError(t, err)
}

func stringArrayLiteral(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	literal := "{" + strings.Join(values, ",") + "}"
	return &literal
}

func int64ArrayLiteral(values []int64) *string {
	if len(values) == 0 {
		return nil
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.FormatInt(v, 10))
	}
	literal := "{" + strings.Join(parts, ",") + "}"
	return &literal
}

func TestActiveCandidates_WindowAndActivity(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mustInsertCatalog(t, db, catalogFixture{id: 1, start: now.Add(-time.Hour), end: now.Add(time.Hour), active: true})
	mustInsertCatalog(t, db, catalogFixture{id: 2, start: now.Add(-48 * time.Hour), end: now.Add(-24 * time.Hour), active: true})
	mustInsertCatalog(t, db, catalogFixture{id: 3, start: now.Add(-time.Hour), end: now.Add(time.Hour), active: false})

	mustInsertItem(t, db, 10, 1, 1, "68.00", "CUST1")
	mustInsertItem(t, db, 11, 2, 1, "10.00")
	mustInsertItem(t, db, 12, 3, 1, "10.00")
	mustInsertItem(t, db, 13, 1, 2, "30.00")

	got, err := NewRepository(db).ActiveCandidates(context.Background(), 1, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].Item.CatalogID)
	require.True(t, got[0].Item.PromoPrice.Equal(money.MustParse("68.00")))
	require.Equal(t, []string{"CUST1"}, got[0].Item.AllowedCustomerNumbers)
}

func TestActiveCandidates_InclusiveBounds(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	mustInsertCatalog(t, db, catalogFixture{id: 1, start: start, end: end, active: true})
	mustInsertItem(t, db, 10, 1, 1, "68.00")

	repo := NewRepository(db)

	atStart, err := repo.ActiveCandidates(context.Background(), 1, start)
	require.NoError(t, err)
	require.Len(t, atStart, 1)

	atEnd, err := repo.ActiveCandidates(context.Background(), 1, end)
	require.NoError(t, err)
	require.Len(t, atEnd, 1)

	after, err := repo.ActiveCandidates(context.Background(), 1, end.Add(time.Second))
	require.NoError(t, err)
	require.Empty(t, after)
}

func TestActiveCandidates_CarriesCatalogTargeting(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	target := "big_retail"
	mustInsertCatalog(t, db, catalogFixture{
		id:                1,
		start:             now.Add(-time.Hour),
		end:               now.Add(time.Hour),
		active:            true,
		targetClientType:  &target,
		targetCustomerIDs: []int64{42, 43},
	})
	mustInsertItem(t, db, 10, 1, 1, "68.00")

	got, err := NewRepository(db).ActiveCandidates(context.Background(), 1, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].TargetClientType)
	require.Equal(t, "big_retail", *got[0].TargetClientType)
	require.Equal(t, []int64{42, 43}, got[0].TargetCustomerIDs)
}

func TestDeactivateExpired_FlipsOnlyClosedCatalogs(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mustInsertCatalog(t, db, catalogFixture{id: 1, start: now.Add(-48 * time.Hour), end: now.Add(-time.Hour), active: true})
	mustInsertCatalog(t, db, catalogFixture{id: 2, start: now.Add(-time.Hour), end: now.Add(time.Hour), active: true})
	mustInsertCatalog(t, db, catalogFixture{id: 3, start: now.Add(-48 * time.Hour), end: now.Add(-time.Hour), active: false})

	repo := NewRepository(db)
	changed, err := repo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(1), changed)

	remaining, err := repo.CountExpiringWithin(context.Background(), now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), remaining)
}
