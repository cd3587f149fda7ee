package services

import (
	"encoding/json"
	"strings"
)

// ProductSnapshot is a denormalized copy of a referenced product taken at
// submission time. It intentionally does not track later changes to the
// source entity.
type ProductSnapshot struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

var contactStatuses = map[string]bool{
	"new":       true,
	"contacted": true,
	"completed": true,
}

func ValidContactStatus(status string) bool {
	return contactStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// ParseSnapshots decodes a selected_* column defensively. Depending on the
// driver and column history the stored value can surface as a JSON array, a
// JSON string wrapping an array, or be empty; older rows must keep reading.
func ParseSnapshots(raw []byte) []ProductSnapshot {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []ProductSnapshot{}
	}
	snapshots := []ProductSnapshot{}
	if err := json.Unmarshal([]byte(trimmed), &snapshots); err == nil {
		return snapshots
	}
	// A doubly-encoded value: the column holds a JSON string whose content
	// is the array.
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &snapshots); err == nil {
			return snapshots
		}
	}
	return []ProductSnapshot{}
}

// EncodeSnapshots serializes a selection for storage. Nil becomes the empty
// array so reads never see SQL NULL.
func EncodeSnapshots(snapshots []ProductSnapshot) []byte {
	if snapshots == nil {
		snapshots = []ProductSnapshot{}
	}
	encoded, err := json.Marshal(snapshots)
	if err != nil {
		return []byte("[]")
	}
	return encoded
}
