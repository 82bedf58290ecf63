package auditoria

import (
	"testing"
	"time"
)

func TestEsVacio(t *testing.T) {
	casos := []struct {
		v     any
		vacio bool
	}{
		{nil, true},
		{"", true},
		{"null", true},
		{[]byte{}, true},
		{"0", false},
		{0, false},
		{false, false},
		{"hola", false},
	}
	for _, c := range casos {
		if got := EsVacio(c.v); got != c.vacio {
			t.Errorf("EsVacio(%#v) = %v, want %v", c.v, got, c.vacio)
		}
	}
}

func TestNormalizarEquivalencias(t *testing.T) {
	// "" and nil are the same absence
	if !Igual("", nil, false, false) {
		t.Error(`"" and nil must compare equal`)
	}
	if !Igual("null", nil, false, false) {
		t.Error(`"null" and nil must compare equal`)
	}
	if Igual("", "x", false, false) {
		t.Error(`"" and a value must differ`)
	}

	// TINYINT(1) vs JSON booleans
	if !Igual(int64(1), true, true, false) {
		t.Error("1 and true must compare equal for boolean fields")
	}
	if !Igual(int64(0), false, true, false) {
		t.Error("0 and false must compare equal for boolean fields")
	}
	if Igual(int64(0), true, true, false) {
		t.Error("0 and true must differ")
	}
	if !Igual("1", true, true, false) {
		t.Error(`"1" and true must compare equal for boolean fields`)
	}

	// DECIMAL columns scanned as strings vs JSON numbers
	if !Igual("8.5", 8.5, false, false) {
		t.Error(`"8.5" and 8.5 must compare equal`)
	}
	if !Igual("0", float64(0), false, false) {
		t.Error(`"0" and 0 must compare equal`)
	}
}

func TestNormalizarFechas(t *testing.T) {
	// a DATE column scanned as datetime vs a plain date payload
	if !Igual("2026-03-05 00:00:00", "2026-03-05", false, true) {
		t.Error("datetime and date of the same day must compare equal")
	}
	if Igual("2026-03-05", "2026-03-06", false, true) {
		t.Error("different days must differ")
	}

	// datetime-looking strings truncate even without the date flag
	if !Igual("2026-03-05T00:00:00Z", "2026-03-05", false, false) {
		t.Error("ISO datetime and date of the same day must compare equal")
	}

	cuando := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	if !Igual(cuando, "2026-03-05", false, true) {
		t.Error("time.Time and date string of the same day must compare equal")
	}
}

func TestNormalizarPunteros(t *testing.T) {
	hora := "08:30"
	var nula *string
	if !Igual(&hora, "08:30", false, false) {
		t.Error("*string dereferences for comparison")
	}
	if !Igual(nula, nil, false, false) {
		t.Error("nil *string is absence")
	}
	if !Igual(nula, "", false, false) {
		t.Error(`nil *string equals ""`)
	}

	id := uint64(4)
	if !Igual(&id, int64(4), false, false) {
		t.Error("*uint64 compares numerically against int64")
	}
}

func TestParteFecha(t *testing.T) {
	casos := map[string]string{
		"2026-03-05":          "2026-03-05",
		"2026-03-05 10:00:00": "2026-03-05",
		"2026-03-05T10:00Z":   "2026-03-05",
		"no es fecha":         "no es fecha",
	}
	for in, want := range casos {
		if got := ParteFecha(in); got != want {
			t.Errorf("ParteFecha(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPresentable(t *testing.T) {
	if Presentable("") != nil {
		t.Error(`Presentable("") = nil expected`)
	}
	cuando := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	if got := Presentable(cuando); got != "2026-03-05" {
		t.Errorf("Presentable(time) = %v", got)
	}
	hora := "08:30"
	if got := Presentable(&hora); got != "08:30" {
		t.Errorf("Presentable(*string) = %v", got)
	}
}
