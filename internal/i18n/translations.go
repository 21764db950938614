package i18n

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Translations holds per-locale overrides for a record's text fields:
//
//	{"ckb": {"name": "ئەڵمانیا"}, "kmr": {"name": "Almanya"}}
//
// The untranslated value lives in the record's own column, so English is
// never stored here. Persisted as a JSON object in a TEXT column.
type Translations map[string]map[string]string

// Get returns the override for field in loc, or fallback when there is none.
func (t Translations) Get(loc Locale, field, fallback string) string {
	if t == nil {
		return fallback
	}
	if v := t[string(loc)][field]; v != "" {
		return v
	}
	return fallback
}

// Set records an override, creating the locale map as needed.
func (t Translations) Set(loc Locale, field, value string) {
	m, ok := t[string(loc)]
	if !ok {
		m = map[string]string{}
		t[string(loc)] = m
	}
	m[field] = value
}

func (t Translations) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]map[string]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Translations) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("i18n: cannot scan %T into Translations", src)
	}
	if len(raw) == 0 {
		*t = nil
		return nil
	}
	var out map[string]map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("i18n: decoding translations: %w", err)
	}
	if len(out) == 0 {
		out = nil
	}
	*t = out
	return nil
}
