package property

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// FacilitySet is an ordered, duplicate-free list of facility names
// (e.g. "AC", "Kasur", "Wifi"), stored as jsonb. Comparison is
// case-insensitive; the first-seen spelling wins.
type FacilitySet []string

// NewFacilitySet builds a set from raw names, trimming and deduping
func NewFacilitySet(names ...string) FacilitySet {
	set := make(FacilitySet, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		set = append(set, name)
	}
	return set
}

// Contains reports membership, case-insensitively
func (s FacilitySet) Contains(name string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, f := range s {
		if strings.ToLower(f) == key {
			return true
		}
	}
	return false
}

// Union merges two sets, preserving order of first appearance
func (s FacilitySet) Union(other FacilitySet) FacilitySet {
	merged := make([]string, 0, len(s)+len(other))
	merged = append(merged, s...)
	merged = append(merged, other...)
	return NewFacilitySet(merged...)
}

// IsEmpty returns true for a nil or empty set
func (s FacilitySet) IsEmpty() bool {
	return len(s) == 0
}

// Value implements driver.Valuer for database storage
func (s FacilitySet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *FacilitySet) Scan(value interface{}) error {
	if value == nil {
		*s = FacilitySet{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FacilitySet", value)
	}

	if len(data) == 0 {
		*s = FacilitySet{}
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewFacilitySet(names...)
	return nil
}
