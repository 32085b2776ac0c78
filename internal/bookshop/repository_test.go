// internal/bookshop/repository_test.go
//
// Unit-tests for the sqlx repository and the collection cache using
// sqlmock.
//
// Run: go test ./internal/bookshop -v

package bookshop

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var shopColumns = []string{
	"id", "name", "city", "state", "county", "description", "hours",
	"website", "latitude", "longitude", "deleted_at", "created_at",
	"updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func shopRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(shopColumns).
		AddRow(42, "Powell's Books", "Portland", "OR", "Multnomah County",
			"", "", "", 45.52, -122.68, nil, now, now).
		AddRow(7, "The Strand", "New York", "New York", "",
			"", "", "", 40.73, -73.99, nil, now, now)
}

func TestAllActive(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT(.|\n)*FROM   bookshop(.|\n)*deleted_at IS NULL").
		WillReturnRows(shopRows())

	got, err := AllActive(context.Background(), db)
	if err != nil {
		t.Fatalf("AllActive error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Name != "Powell's Books" || got[0].County != "Multnomah County" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestByID(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT(.|\n)*WHERE  id = \\?").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(shopColumns).
			AddRow(42, "Powell's Books", "Portland", "OR", "", "", "", "",
				45.52, -122.68, nil, now, now))

	rec, err := ByID(context.Background(), db, 42)
	if err != nil {
		t.Fatalf("ByID error: %v", err)
	}
	if rec.ID != 42 || rec.Name != "Powell's Books" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestStateCode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"OR", "OR"},
		{"Oregon", "OR"},
		{"new york", "NY"},
		{"zz", "ZZ"}, // unknown passes through uppercased
	}
	for _, c := range cases {
		r := Record{State: c.in}
		if got := r.StateCode(); got != c.want {
			t.Errorf("StateCode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCollectionWarmAndCollisions(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT(.|\n)*FROM   bookshop").
		WillReturnRows(sqlmock.NewRows(shopColumns).
			AddRow(1, "Book Nook", "Salem", "OR", "", "", "", "", 0, 0, nil, now, now).
			AddRow(2, "The Book Nook", "Eugene", "OR", "", "", "", "", 0, 0, nil, now, now).
			AddRow(3, "Book-Nook!", "Bend", "OR", "", "", "", "", 0, 0, nil, now, now))

	c := NewCollection(db, time.Minute)
	n, err := c.Warm(context.Background())
	if err != nil {
		t.Fatalf("Warm error: %v", err)
	}
	if n != 3 {
		t.Fatalf("Warm count = %d, want 3", n)
	}

	// "Book Nook" and "Book-Nook!" share the slug "book-nook".
	if !c.slugCollides("book-nook") {
		t.Errorf("slugCollides(book-nook) = false, want true")
	}
	if c.slugCollides("the-book-nook") {
		t.Errorf("slugCollides(the-book-nook) = true, want false")
	}

	// A second Shops call inside the TTL must not hit the database.
	shops, err := c.Shops(context.Background())
	if err != nil {
		t.Fatalf("Shops error: %v", err)
	}
	if len(shops) != 3 {
		t.Fatalf("Shops returned %d rows, want 3", len(shops))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCollectionStaleSnapshotOnError(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT(.|\n)*FROM   bookshop").
		WillReturnRows(sqlmock.NewRows(shopColumns).
			AddRow(1, "Left Bank Books", "St Louis", "MO", "", "", "", "",
				0, 0, nil, now, now))

	c := NewCollection(db, time.Nanosecond) // expire immediately
	if _, err := c.Warm(context.Background()); err != nil {
		t.Fatalf("Warm error: %v", err)
	}

	mock.ExpectQuery("SELECT(.|\n)*FROM   bookshop").
		WillReturnError(context.DeadlineExceeded)

	time.Sleep(time.Millisecond)
	shops, err := c.Shops(context.Background())
	if err != nil {
		t.Fatalf("Shops should serve stale on refresh error, got %v", err)
	}
	if len(shops) != 1 || shops[0].Name != "Left Bank Books" {
		t.Fatalf("unexpected stale snapshot: %+v", shops)
	}
}
