package auditoria

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Normalization collapses the representational noise between a JSON payload
// and a row scanned from MySQL: "" / nil equate, TINYINT(1) 0/1 becomes bool
// for declared boolean fields, DATETIME strings compare by date only.

var reFechaPrefijo = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// EsVacio reports the empty-likes: nil, "" and the literal "null".
func EsVacio(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == "" || t == "null"
	case []byte:
		return len(t) == 0
	}
	return false
}

// Normalizar canonicalizes a value for comparison. esBool and esFecha come
// from the table descriptor.
func Normalizar(v any, esBool, esFecha bool) any {
	if EsVacio(v) {
		return nil
	}
	v = desreferenciar(v)
	if EsVacio(v) {
		return nil
	}

	if esBool {
		return comoBool(v)
	}
	if esFecha {
		return ParteFecha(comoTexto(v))
	}
	if f, ok := comoFloat(v); ok {
		return f
	}
	s := comoTexto(v)
	// datetime-looking strings compare by their date portion
	if reFechaPrefijo.MatchString(s) && len(s) > 10 {
		return ParteFecha(s)
	}
	// DECIMAL columns scan as strings; compare numerically against the
	// JSON payload's numbers
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Igual compares two values under normalization.
func Igual(a, b any, esBool, esFecha bool) bool {
	na, nb := Normalizar(a, esBool, esFecha), Normalizar(b, esBool, esFecha)
	if na == nil || nb == nil {
		return na == nil && nb == nil
	}
	return na == nb
}

// ParteFecha truncates a date/datetime string to YYYY-MM-DD.
func ParteFecha(s string) string {
	if m := reFechaPrefijo.FindString(s); m != "" {
		return m
	}
	return s
}

func desreferenciar(v any) any {
	switch t := v.(type) {
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case *uint64:
		if t == nil {
			return nil
		}
		return *t
	case *int64:
		if t == nil {
			return nil
		}
		return *t
	case *float64:
		if t == nil {
			return nil
		}
		return *t
	case *bool:
		if t == nil {
			return nil
		}
		return *t
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	case []byte:
		return string(t)
	}
	return v
}

func comoBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1" || strings.EqualFold(t, "true")
	}
	if f, ok := comoFloat(v); ok {
		return f != 0
	}
	return false
}

func comoFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}

func comoTexto(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Presentable renders a value for the detalle JSON and the one-line summary.
func Presentable(v any) any {
	if EsVacio(v) {
		return nil
	}
	v = desreferenciar(v)
	if EsVacio(v) {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}
