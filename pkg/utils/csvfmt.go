package utils

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dataplatform-io/dynoshift/pkg/models"
)

// FormatCell renders an envelope value as a CSV cell. A nil value becomes
// the empty string so absent fields stay null-like through the bulk load.
func FormatCell(val interface{}) string {
	if val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MarshalPayload serializes the full raw record for the data column.
func MarshalPayload(rec models.Record) (string, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to serialize record payload: %w", err)
	}
	return string(b), nil
}

// EnvelopeRow converts a transformed record into the staged-file column
// order: row_id, data, created, updated, isDeleted.
func EnvelopeRow(rec models.TransformedRecord) ([]string, error) {
	payload, err := MarshalPayload(rec.Data)
	if err != nil {
		return nil, err
	}
	return []string{
		FormatCell(rec.RowID),
		payload,
		FormatCell(rec.Created),
		rec.Updated,
		strconv.FormatBool(rec.IsDeleted),
	}, nil
}
