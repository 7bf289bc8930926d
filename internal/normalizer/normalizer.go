// Package normalizer coerces record values to strings so that downstream
// column type inference cannot conflict across heterogeneous records.
package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/gouthamssc/jsoncol/internal/models"
)

// Normalizer rewrites every non-null field value as its canonical string
// rendering. Nulls pass through unchanged.
type Normalizer struct {
	log *zap.Logger
}

// New creates a Normalizer.
func New(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{log: log}
}

// Normalize returns a new record sequence of the same length and order where
// every non-null value has been replaced by its string rendering. It is
// idempotent and never fails.
func (n *Normalizer) Normalize(records []models.Record) []models.Record {
	normalized := make([]models.Record, len(records))
	for i, rec := range records {
		row := make(models.Record, len(rec))
		for k, v := range rec {
			if v == nil {
				row[k] = nil
				continue
			}
			row[k] = Render(v)
		}
		normalized[i] = row
	}
	return normalized
}

// Render returns the canonical string form of a single JSON value: strings
// unchanged, numbers as their literal text, booleans via strconv, and nested
// structures as compact JSON.
func Render(v models.JSONValue) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case models.JSONObject, models.JSONArray:
		b, err := json.Marshal(val)
		if err != nil {
			// Values decoded from JSON always re-marshal.
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
