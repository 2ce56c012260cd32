package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talotukku/edimport/internal/edi"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "sellers.db"), filepath.Join(dir, "buyers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.Migrate())
	return st
}

func ptr[T any](v T) *T { return &v }

func testProduct(identifier string) *edi.Product {
	return &edi.Product{
		Category:      edi.CategoryWaterAndHeating,
		Identifier:    identifier,
		Operation:     edi.OperationAdded,
		Language:      edi.LangFin,
		Date:          edi.Date{Year: "2026", Month: "08", Day: "15"},
		Name:          "COPPER PIPE 15MM",
		Description:   "HARD DRAWN 5M",
		DiscountGroup: ptr("DG1"),
		Unit:          "m",
		UnitWeight:    ptr(1.5),
		TaxClass:      ptr("24"),
		UsablesInUnit: 1.0,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.Migrate())
}

func TestLookupInserts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	tx, err := st.BeginSellers(ctx)
	require.NoError(t, err)

	require.NoError(t, InsertUnit(tx, "kpl"))
	require.NoError(t, InsertUnit(tx, "kpl"), "duplicate is ignored")
	require.NoError(t, InsertLanguage(tx, edi.LangFin))
	require.NoError(t, InsertDiscountGroup(tx, "DG1"))
	require.NoError(t, InsertPriceGroup(tx, "A1"))
	require.NoError(t, tx.Commit())

	groups, err := st.DiscountGroups()
	require.NoError(t, err)
	assert.Equal(t, []string{"DG1"}, groups)

	groups, err = st.PriceGroups()
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, groups)
}

func TestUpsertProduct(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	p := testProduct("123456789")

	tx, err := st.BeginSellers(ctx)
	require.NoError(t, err)
	require.NoError(t, InsertSeller(tx, "1234567", "Acme"))
	require.NoError(t, UpsertGenericProduct(tx, p))
	require.NoError(t, UpsertTranslation(tx, "1234567", p))
	require.NoError(t, UpsertProduct(tx, "1234567", p))
	require.NoError(t, tx.Commit())

	// Re-delivery with changed content overwrites in place.
	p.Name = "COPPER PIPE 15MM NEW"
	p.Operation = edi.OperationModified

	tx, err = st.BeginSellers(ctx)
	require.NoError(t, err)
	require.NoError(t, UpsertTranslation(tx, "1234567", p))
	require.NoError(t, UpsertProduct(tx, "1234567", p))
	require.NoError(t, tx.Commit())

	var name, operation string
	err = st.sellers.QueryRow(
		`select t.name, p.operation from product_lv_t t
		 join products_lv p on p.id = '1234567' || p.product_id
		 where t.id = ?`, "12345671234567891",
	).Scan(&name, &operation)
	require.NoError(t, err)
	assert.Equal(t, "COPPER PIPE 15MM NEW", name)
	assert.Equal(t, "mod", operation)

	var count int
	require.NoError(t, st.sellers.QueryRow(`select count(*) from products_lv`).Scan(&count))
	assert.Equal(t, 1, count, "upsert must not grow the table")
}

func TestUpsertPrice(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := &edi.Price{
		Category:      edi.CategoryElectricity,
		Identifier:    "987654321",
		PriceGroup:    "A1",
		Price:         150.99,
		Date:          edi.Date{Year: "2026", Month: "08", Day: "01"},
		DiscountGroup: "DG1",
		Unit:          "kpl",
		UnitsIncluded: 1,
		UsablesInUnit: 1.0,
	}

	tx, err := st.BeginSellers(ctx)
	require.NoError(t, err)
	require.NoError(t, UpsertPrice(tx, "1234567", p))
	require.NoError(t, tx.Commit())

	p.Price = 99.5
	tx, err = st.BeginSellers(ctx)
	require.NoError(t, err)
	require.NoError(t, UpsertPrice(tx, "1234567", p))
	require.NoError(t, tx.Commit())

	var price float64
	err = st.sellers.QueryRow(`select price from prices_sa where id = ?`, "1234567987654321").Scan(&price)
	require.NoError(t, err)
	assert.InDelta(t, 99.5, price, 1e-9)
}

func TestUpsertDiscount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	tx, err := st.BeginBuyers(ctx)
	require.NoError(t, err)
	require.NoError(t, InsertBuyer(tx, "7771234567", "uuid-1", "777", 25.5))
	require.NoError(t, InsertBuyer(tx, "7771234567", "uuid-2", "777", 25.5), "duplicate is ignored")

	d := &edi.Discount{DiscountGroup: "DG1", PriceGroup: "A1", Percent1: 10, Percent2: 5}
	require.NoError(t, UpsertDiscount(tx, "7771234567", "1234567", d))

	d.Percent1 = 12
	require.NoError(t, UpsertDiscount(tx, "7771234567", "1234567", d))
	require.NoError(t, tx.Commit())

	var uuid string
	var percent float64
	err = st.buyers.QueryRow(
		`select b.uuid, d.percent_1 from buyers b join discounts d on d.buyer_id = b.id
		 where b.id = ?`, "7771234567",
	).Scan(&uuid, &percent)
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", uuid, "first insert wins")
	assert.InDelta(t, 12.0, percent, 1e-9)
}

func TestCountSellerRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	tx, err := st.BeginSellers(ctx)
	require.NoError(t, err)
	require.NoError(t, UpsertGenericProduct(tx, testProduct("123456789")))
	require.NoError(t, UpsertProduct(tx, "1234567", testProduct("123456789")))
	require.NoError(t, tx.Commit())

	counts, err := st.CountSellerRows("1234567")
	require.NoError(t, err)
	require.Len(t, counts, 5)

	byCat := map[string]SellerRowCounts{}
	for _, c := range counts {
		byCat[c.Category] = c
	}
	assert.Equal(t, 1, byCat["lv"].Products)
	assert.Equal(t, 0, byCat["lv"].Prices)
	assert.Equal(t, 0, byCat["sa"].Products)
}

func TestInsertSellerError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("insert or ignore into sellers").
		WillReturnError(assert.AnError)

	tx, err := db.Begin()
	require.NoError(t, err)

	err = InsertSeller(tx, "1234567", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert seller")
	assert.NoError(t, mock.ExpectationsWereMet())
}
