package request

import "testing"

func TestReadString(t *testing.T) {
	if got, err := ReadString("  Chess Club  "); err != nil || got != "Chess Club" {
		t.Errorf("ReadString trimmed = %q, err = %v", got, err)
	}
	if _, err := ReadString("   "); err == nil {
		t.Error("ReadString should reject whitespace-only input")
	}
	if _, err := ReadString(42.0); err == nil {
		t.Error("ReadString should reject non-strings")
	}
}

func TestReadInt(t *testing.T) {
	// JSON numbers decode to float64.
	if got, err := ReadInt(float64(7)); err != nil || got != 7 {
		t.Errorf("ReadInt(float64) = %d, err = %v", got, err)
	}
	if got, err := ReadInt(3); err != nil || got != 3 {
		t.Errorf("ReadInt(int) = %d, err = %v", got, err)
	}
	if _, err := ReadInt("7"); err == nil {
		t.Error("ReadInt should reject strings")
	}
}

func TestReadBool(t *testing.T) {
	if got, err := ReadBool(true); err != nil || !got {
		t.Errorf("ReadBool(true) = %v, err = %v", got, err)
	}
	if _, err := ReadBool(1); err == nil {
		t.Error("ReadBool should reject numbers")
	}
}
