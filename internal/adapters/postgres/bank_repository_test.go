package postgres

import (
	"BankAccounts/internal/core/domain"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func strPtr(s string) *string { return &s }

// testBankCode returns a code short enough for the column and unique per run.
func testBankCode() string {
	return "T" + strings.ToUpper(uuid.NewString()[:8])
}

func newTestBank(code, country string) *domain.Bank {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Bank{
		ID:        uuid.New(),
		Code:      code,
		Name:      "Test Bank " + code,
		Country:   country,
		Address:   strPtr("1 Main St"),
		Phone:     strPtr("+1-555-0100"),
		Email:     strPtr("ops@example.com"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestBankRepository_CreateAndFind(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewBankRepository(testDB, testSecSvc, &nopLogger)
	ctx := testContext(t)

	bank := newTestBank(testBankCode(), "USA")
	defer cleanupTestBank(t, bank.Code)

	if err := repo.Create(ctx, bank); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, bank.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil {
		t.Fatal("FindByID returned nil for existing bank")
	}
	if found.Code != bank.Code || found.Name != bank.Name {
		t.Errorf("Mismatch: got %s/%s, want %s/%s", found.Code, found.Name, bank.Code, bank.Name)
	}
	if found.Email == nil || *found.Email != "ops@example.com" {
		t.Errorf("Email not decrypted: %v", found.Email)
	}
	if !found.CreatedAt.Equal(bank.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", found.CreatedAt, bank.CreatedAt)
	}

	// Contact columns are stored encrypted
	var rawEmail string
	err = testDB.pool.QueryRow(ctx, "SELECT email FROM banks WHERE id = $1", bank.ID).Scan(&rawEmail)
	if err != nil {
		t.Fatalf("Raw select failed: %v", err)
	}
	if rawEmail == "ops@example.com" {
		t.Error("Email stored in plaintext")
	}

	byCode, err := repo.FindByCode(ctx, bank.Code)
	if err != nil || byCode == nil || byCode.ID != bank.ID {
		t.Fatalf("FindByCode: got %v, %v", byCode, err)
	}
}

func TestBankRepository_NotFound(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewBankRepository(testDB, testSecSvc, &nopLogger)

	found, err := repo.FindByID(testContext(t), uuid.New())
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if found != nil {
		t.Errorf("Expected nil bank, got %v", found)
	}

	err = repo.Update(testContext(t), newTestBank(testBankCode(), "USA"))
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Errorf("Expected ErrBankNotFound, got %v", err)
	}
}

func TestBankRepository_DuplicateCode(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewBankRepository(testDB, testSecSvc, &nopLogger)
	ctx := testContext(t)

	code := testBankCode()
	defer cleanupTestBank(t, code)

	if err := repo.Create(ctx, newTestBank(code, "USA")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := repo.Create(ctx, newTestBank(code, "USA"))
	if !errors.Is(err, domain.ErrDuplicateBankCode) {
		t.Fatalf("Expected ErrDuplicateBankCode, got %v", err)
	}

	exists, err := repo.ExistsByCode(ctx, code)
	if err != nil || !exists {
		t.Errorf("ExistsByCode: got %v, %v", exists, err)
	}
}

func TestBankRepository_UpdateAndExclusion(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewBankRepository(testDB, testSecSvc, &nopLogger)
	ctx := testContext(t)

	bank := newTestBank(testBankCode(), "USA")
	defer cleanupTestBank(t, bank.Code)
	if err := repo.Create(ctx, bank); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	taken, err := repo.ExistsByCodeExcludingID(ctx, bank.Code, bank.ID)
	if err != nil || taken {
		t.Errorf("Own code should not count as taken: %v, %v", taken, err)
	}

	bank.Name = "Renamed"
	bank.Phone = nil
	bank.UpdatedAt = bank.UpdatedAt.Add(time.Second)
	if err := repo.Update(ctx, bank); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, _ := repo.FindByID(ctx, bank.ID)
	if found.Name != "Renamed" {
		t.Errorf("Name not updated: %s", found.Name)
	}
	if found.Phone != nil {
		t.Errorf("Phone should be cleared, got %v", *found.Phone)
	}
}

func TestBankRepository_FindByCountryPaged(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewBankRepository(testDB, testSecSvc, &nopLogger)
	ctx := testContext(t)

	country := "Country-" + uuid.NewString()[:8]
	for i := 0; i < 3; i++ {
		bank := newTestBank(testBankCode(), country)
		defer cleanupTestBank(t, bank.Code)
		if err := repo.Create(ctx, bank); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	upper, err := repo.FindByCountry(ctx, strings.ToUpper(country), domain.PageRequest{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("FindByCountry failed: %v", err)
	}
	if upper.TotalElements != 0 {
		t.Errorf("Country match must be exact, got %d banks", upper.TotalElements)
	}

	page, err := repo.FindByCountry(ctx, country, domain.PageRequest{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("FindByCountry failed: %v", err)
	}
	if page.TotalElements != 3 || page.TotalPages != 2 || len(page.Content) != 2 {
		t.Errorf("Unexpected page: total=%d pages=%d len=%d", page.TotalElements, page.TotalPages, len(page.Content))
	}

	last, err := repo.FindByCountry(ctx, country, domain.PageRequest{
		Page: 1,
		Size: 2,
		Sort: []domain.SortOrder{{Field: "code", Desc: true}},
	})
	if err != nil {
		t.Fatalf("FindByCountry page 1 failed: %v", err)
	}
	if len(last.Content) != 1 {
		t.Errorf("Expected 1 bank on last page, got %d", len(last.Content))
	}
}

func TestBankRepository_Delete(t *testing.T) {
	nopLogger := zerolog.Nop()
	repo := NewBankRepository(testDB, testSecSvc, &nopLogger)
	ctx := testContext(t)

	bank := newTestBank(testBankCode(), "USA")
	if err := repo.Create(ctx, bank); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.DeleteByID(ctx, bank.ID); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	found, err := repo.FindByID(ctx, bank.ID)
	if err != nil || found != nil {
		t.Errorf("Expected bank gone, got %v, %v", found, err)
	}
}
