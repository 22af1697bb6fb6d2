package mysql

import (
	"fmt"
	"sync/atomic"
	"testing"

	"assetfin-backend/internal/domain/approval"
	"assetfin-backend/internal/domain/catalog"
	"assetfin-backend/internal/domain/staff"
	"assetfin-backend/internal/infrastructure/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory sqlite database. financing_requests is
// created by hand because its state column uses a mysql enum type that the
// sqlite migrator cannot express.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	gdb, err := db.OpenGormWithDialector(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(
		&approval.Request{},
		&approval.Action{},
		&catalog.LoanType{},
		&catalog.RateSet{},
		&staff.Member{},
		&staff.RolePrivilege{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ddl := `CREATE TABLE financing_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		financing_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		loan_type_code TEXT,
		amount REAL,
		unit_price REAL,
		quantity INTEGER,
		additional_contribution REAL,
		tenor_months INTEGER,
		equity_percent REAL,
		total_cost REAL,
		equity_amount REAL,
		financed_cost REAL,
		minimum_financing_price REAL,
		estimated_profit REAL,
		profit_percent REAL,
		state TEXT NOT NULL DEFAULT 'proposed',
		state_updated_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`
	if err := gdb.Exec(ddl).Error; err != nil {
		t.Fatalf("create financing_requests: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}
