// Package parser classifies a JSON input stream as empty, a single object, an
// array, or JSON Lines, and parses it into an ordered sequence of records.
package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/gouthamssc/jsoncol/internal/errors"
	"github.com/gouthamssc/jsoncol/internal/models"
)

// Parser detects the input format and parses records out of it. The logger is
// injected so that skipped-line warnings are testable without touching
// process-wide log state.
type Parser struct {
	log *zap.Logger
}

// New creates a Parser that reports skipped lines through log.
func New(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

// ParseFile reads and parses the file at path. A missing file is reported as
// an input error before any parsing is attempted.
func (p *Parser) ParseFile(path string, strict bool) (models.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ParseResult{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", path),
				errors.ErrFileNotFound,
			)
		}
		return models.ParseResult{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", path),
			err,
		)
	}
	return p.ParseBytes(data, strict)
}

// Parse reads all of r and parses it. The whole input is held in memory; the
// format cannot be detected without the option of re-reading from the start.
func (p *Parser) Parse(r io.Reader, strict bool) (models.ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.ParseResult{}, errors.NewInputError("failed to read input", err)
	}
	return p.ParseBytes(data, strict)
}

// ParseBytes classifies data by its first non-whitespace character and parses
// it accordingly:
//
//   - all whitespace (or empty): zero records, not an error
//   - '[': one JSON array, all-or-nothing
//   - '{': one JSON document if the whole input parses as one, otherwise
//     JSON Lines from the start of the input
//   - anything else: shape error
//
// In strict mode the first malformed line aborts the parse; otherwise bad
// lines are logged, counted, and skipped.
func (p *Parser) ParseBytes(data []byte, strict bool) (models.ParseResult, error) {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) == 0 {
		return models.ParseResult{Records: []models.Record{}}, nil
	}

	switch trimmed[0] {
	case '[':
		return p.parseArray(data)
	case '{':
		// The input may be exactly one document, or JSON Lines whose first
		// line also starts with '{'. Attempting a whole-document parse is the
		// only reliable discriminator.
		if res, ok, err := p.parseDocument(data); ok {
			return res, err
		}
		return p.parseLines(data, strict)
	default:
		return models.ParseResult{}, errors.NewShapeError(
			"input must be a JSON array, a single JSON object, or JSON Lines",
			errors.ErrInvalidRootShape,
		)
	}
}

// parseArray parses the entire input as one JSON array of objects. There is
// no per-element recovery: a malformed array body fails regardless of the
// strict setting.
func (p *Parser) parseArray(data []byte) (models.ParseResult, error) {
	value, err := decodeDocument(data)
	if err != nil {
		return models.ParseResult{}, errors.NewParsingError(
			fmt.Sprintf("malformed JSON array: %v", err),
			errors.ErrMalformedInput,
		)
	}

	arr, ok := value.(models.JSONArray)
	if !ok {
		return models.ParseResult{}, errors.NewShapeError(
			"top-level JSON value must be an array",
			errors.ErrInvalidRootShape,
		)
	}
	return recordsFromArray(arr)
}

// parseDocument attempts to parse the entire input as one JSON value. The
// second return value reports whether the input was a single document at all;
// when it is false the caller falls back to line-delimited parsing.
func (p *Parser) parseDocument(data []byte) (models.ParseResult, bool, error) {
	value, err := decodeDocument(data)
	if err != nil {
		return models.ParseResult{}, false, nil
	}

	switch v := value.(type) {
	case models.JSONObject:
		return models.ParseResult{Records: []models.Record{v}}, true, nil
	case models.JSONArray:
		// Defensive: cannot happen for input starting with '{', but the
		// array shape is still a valid root.
		res, err := recordsFromArray(v)
		return res, true, err
	default:
		res := models.ParseResult{}
		return res, true, errors.NewShapeError(
			fmt.Sprintf("top-level JSON value must be an object or array, got %T", value),
			errors.ErrInvalidRootShape,
		)
	}
}

// parseLines parses the input as JSON Lines, from the start of the stream.
// Blank and whitespace-only lines contribute nothing and are not counted as
// skipped.
func (p *Parser) parseLines(data []byte, strict bool) (models.ParseResult, error) {
	records := make([]models.Record, 0)
	skipped := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		rec, err := decodeLine(line)
		if err != nil {
			detail := strings.TrimSpace(string(line))
			if strict {
				return models.ParseResult{}, errors.NewParsingError(
					fmt.Sprintf("malformed JSON on line %d: %v: %s", lineno, err, detail),
					errors.ErrMalformedInput,
				)
			}
			p.log.Warn("skipping malformed JSON line",
				zap.Int("line", lineno),
				zap.String("content", detail),
				zap.Error(err),
			)
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return models.ParseResult{}, errors.NewInputError("failed to scan input lines", err)
	}

	return models.ParseResult{Records: records, Skipped: skipped}, nil
}

// decodeDocument decodes data as exactly one JSON value. Numbers are kept as
// json.Number so their literal text survives. Trailing non-whitespace data is
// an error, which is what triggers the JSON Lines fallback for '{' input.
func decodeDocument(data []byte) (models.JSONValue, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value models.JSONValue
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, fmt.Errorf("trailing data after first JSON value")
	}
	return models.ToModelValue(value), nil
}

// decodeLine decodes one JSON Lines line into a record. A line holding a
// valid JSON value that is not an object cannot become a record and is
// treated like any other malformed line.
func decodeLine(line []byte) (models.Record, error) {
	value, err := decodeDocument(line)
	if err != nil {
		return nil, err
	}
	rec, ok := value.(models.JSONObject)
	if !ok {
		return nil, fmt.Errorf("line is not a JSON object")
	}
	return rec, nil
}

// recordsFromArray converts array elements into records, verbatim and in
// order. Elements that are not objects cannot become records; array parsing
// is all-or-nothing, so that is fatal.
func recordsFromArray(arr models.JSONArray) (models.ParseResult, error) {
	records := make([]models.Record, 0, len(arr))
	for i, elem := range arr {
		obj, ok := elem.(models.JSONObject)
		if !ok {
			return models.ParseResult{}, errors.NewShapeError(
				fmt.Sprintf("array element %d is not a JSON object", i),
				errors.ErrInvalidRootShape,
			)
		}
		records = append(records, obj)
	}
	return models.ParseResult{Records: records}, nil
}
