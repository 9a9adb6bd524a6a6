package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AltName is one structured alternative-name entry. The same shape is
// used for person titles (art: Akademisch, Ehrentitel, Adelstitel) and
// entity alternative names (art: alternative name, collective term,
// legacy name, ...).
type AltName struct {
	Name    string `json:"name"`
	Art     string `json:"art,omitempty"`
	Sprache string `json:"sprache,omitempty"`
	Beginn  string `json:"beginn,omitempty"`
	Ende    string `json:"ende,omitempty"`
}

// AltNames is a JSON array column of AltName entries.
type AltNames []AltName

// Value implements driver.Valuer.
func (a AltNames) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *AltNames) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AltNames", value)
	}
	if len(data) == 0 {
		*a = nil
		return nil
	}
	return json.Unmarshal(data, a)
}

// GormDataType tells gorm which column type to use.
func (AltNames) GormDataType() string {
	return "json"
}
