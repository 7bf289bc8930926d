package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, boolean, null, object, or array.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Record is one row of input: a mapping from field name to value. Field sets
// may differ between records of the same batch.
type Record = JSONObject

// ParseResult holds the outcome of one ingestion pass: the parsed records in
// input order plus the number of malformed lines that were skipped.
type ParseResult struct {
	Records []Record
	Skipped int
}

// ToModelValue converts raw decoded JSON types (map[string]interface{},
// []interface{}) into our model types, recursively. Primitives are returned
// as is.
func ToModelValue(val JSONValue) JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(JSONObject, len(v))
		for key, value := range v {
			obj[key] = ToModelValue(value)
		}
		return obj
	case []interface{}:
		arr := make(JSONArray, len(v))
		for i, value := range v {
			arr[i] = ToModelValue(value)
		}
		return arr
	default:
		return v
	}
}
