package spread

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInventoryRoundTrip(t *testing.T) {
	defs := []Definition{
		{MainSubMain, "I2501", "I2501", "I2505", "I2501-I2505"},
		{PrevMonthMain, "I2501", "I2412", "I2501", "I2412-I2501"},
	}
	path := filepath.Join(t.TempDir(), "spreads.csv")
	if err := WriteInventory(path, defs); err != nil {
		t.Fatalf("WriteInventory: %v", err)
	}

	got, err := ReadInventory(path)
	if err != nil {
		t.Fatalf("ReadInventory: %v", err)
	}
	if len(got) != len(defs) {
		t.Fatalf("len = %d, want %d", len(got), len(defs))
	}
	for i := range defs {
		if got[i] != defs[i] {
			t.Errorf("defs[%d] = %+v, want %+v", i, got[i], defs[i])
		}
	}
}

func TestReadInventoryReorderedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spreads.csv")
	content := "spread_code,contract_a,contract_b,spread_type,main_contract\n" +
		"I2501-I2505,I2501,I2505,Main-SubMain,I2501\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ReadInventory(path)
	if err != nil {
		t.Fatalf("ReadInventory: %v", err)
	}
	want := Definition{MainSubMain, "I2501", "I2501", "I2505", "I2501-I2505"}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadInventoryMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spreads.csv")
	if err := os.WriteFile(path, []byte("spread_type,contract_a\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := ReadInventory(path); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestReadInventoryNotFound(t *testing.T) {
	if _, err := ReadInventory(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatalf("expected error for absent file")
	}
}
