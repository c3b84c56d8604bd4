package postgres

import (
	"BankAccounts/internal/adapters/security"
	"BankAccounts/internal/core/ports"
	"context"
	"log"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// Fixed test key (32 bytes, hex).
const testEncryptionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

var (
	testDB     *DB
	testSecSvc ports.SecurityPort
)

// TestMain sets up a connection to the test database. The repository tests
// need a live Postgres; without TEST_DATABASE_URL the package is skipped.
func TestMain(m *testing.M) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		log.Println("TEST_DATABASE_URL not set, skipping postgres tests")
		os.Exit(0)
	}

	nopLogger := zerolog.Nop()

	var err error
	testSecSvc, err = security.NewAESServiceFromHex(testEncryptionKey, &nopLogger)
	if err != nil {
		log.Fatalf("TestMain: Failed to create security service: %v", err)
	}

	ctx := context.Background()
	testDB, err = NewDB(ctx, url, &nopLogger)
	if err != nil {
		log.Fatalf("TestMain: Failed to connect to test database: %v", err)
	}

	// Both schemas share the test database.
	for _, schema := range []string{BanksSchema, AccountsSchema} {
		if err := testDB.Migrate(ctx, schema); err != nil {
			log.Fatalf("TestMain: Failed to migrate: %v", err)
		}
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

// Helper to clean up the bank after a test
func cleanupTestBank(t *testing.T, code string) {
	_, err := testDB.pool.Exec(context.Background(), "DELETE FROM banks WHERE code = $1", code)
	if err != nil {
		t.Logf("Warning: Failed to cleanup bank %s: %v", code, err)
	}
}

// Helper to clean up the accounts of a bank
func cleanupTestAccounts(t *testing.T, bankID string) {
	_, err := testDB.pool.Exec(context.Background(), "DELETE FROM accounts WHERE bank_id = $1", bankID)
	if err != nil {
		t.Logf("Warning: Failed to cleanup accounts of bank %s: %v", bankID, err)
	}
}
