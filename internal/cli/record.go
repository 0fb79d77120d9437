package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Record is a schemaless resource. Its identifier is the "id" member.
type Record map[string]any

// EntityID implements datasync.Entity. Records without a numeric id
// report 0.
func (r Record) EntityID() int64 {
	switch id := r["id"].(type) {
	case int:
		return int64(id)
	case int64:
		return id
	case uint64:
		return int64(id)
	case float64:
		return int64(id)
	case json.Number:
		n, _ := id.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(id, 10, 64)
		return n
	default:
		return 0
	}
}

// parseRecord reads a record given on the command line. YAML is a superset
// of JSON, so both are accepted.
func parseRecord(arg string) (Record, error) {
	var r Record
	if err := yaml.Unmarshal([]byte(arg), &r); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("parse record: expected an object, got %q", arg)
	}
	return r, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}
