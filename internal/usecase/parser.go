package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// Column names of the meal-plan CSV form. Notes is optional per row.
const (
	ColumnDate     = "date"
	ColumnMealType = "mealType"
	ColumnFoodName = "foodName"
	ColumnGrams    = "grams"
	ColumnNotes    = "notes"
)

// mealPlanColumns are the required meal-plan header columns.
var mealPlanColumns = []string{ColumnDate, ColumnMealType, ColumnFoodName, ColumnGrams}

// knownColumns maps lowercase header cells to their canonical spelling.
var knownColumns = map[string]string{
	"date":     ColumnDate,
	"mealtype": ColumnMealType,
	"foodname": ColumnFoodName,
	"grams":    ColumnGrams,
	"notes":    ColumnNotes,
}

// foodCatalogColumns is the header of the food-catalog upload, a separate
// import form. A file carrying all of these is not a meal plan, and reporting
// that once beats rejecting every row downstream.
var foodCatalogColumns = []string{"foodId", "category", "kcalPer100g", "proteinPer100g"}

// delimiterAttempts is the fixed detection order: comma first, then exactly
// one retry with semicolon.
var delimiterAttempts = []rune{',', ';'}

// attemptOutcome tags the result of a single delimiter attempt.
type attemptOutcome int

const (
	attemptOK    attemptOutcome = iota // rows parsed under this delimiter
	attemptRetry                       // structural failure, try the next delimiter
	attemptFail                        // fatal regardless of delimiter
)

type parseAttempt struct {
	outcome attemptOutcome
	rows    []domain.RawRow
	err     error
}

// ParseMealPlanCSV turns raw file bytes into ordered RawRows, auto-detecting
// the field separator. A file that is parseable under both separators is
// accepted under whichever succeeds first.
func ParseMealPlanCSV(data []byte) ([]domain.RawRow, error) {
	data = sanitizeUTF8(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))

	var lastErr error
	for _, delim := range delimiterAttempts {
		attempt := parseMealPlanAttempt(data, delim)
		switch attempt.outcome {
		case attemptOK:
			return attempt.rows, nil
		case attemptFail:
			return nil, attempt.err
		}
		lastErr = attempt.err
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, lastErr)
}

// parseMealPlanAttempt parses data with one delimiter. Quoting
// irregularities are tolerated (LazyQuotes); any remaining read error is a
// structural failure attributed to delimiter mismatch.
func parseMealPlanAttempt(data []byte, delim rune) parseAttempt {
	records, err := readAll(data, delim)
	if err != nil {
		return parseAttempt{outcome: attemptRetry, err: err}
	}
	if len(records) == 0 {
		return parseAttempt{outcome: attemptFail, err: domain.ErrEmptyFile}
	}

	header := canonicalHeader(records[0])

	if containsAll(header, foodCatalogColumns) {
		return parseAttempt{outcome: attemptFail, err: fmt.Errorf("%w: file matches the food-catalog layout", domain.ErrWrongFileType)}
	}
	if !containsAll(header, mealPlanColumns) {
		return parseAttempt{
			outcome: attemptRetry,
			err:     fmt.Errorf("header %v is missing meal-plan columns", records[0]),
		}
	}

	rows := make([]domain.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(domain.RawRow, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return parseAttempt{outcome: attemptFail, err: domain.ErrEmptyFile}
	}
	return parseAttempt{outcome: attemptOK, rows: rows}
}

// ParseFoodListCSV parses the single-column food-list form and returns the
// food names in file order. Delimiter detection matches ParseMealPlanCSV,
// though a one-column file rarely needs the retry.
func ParseFoodListCSV(data []byte) ([]string, error) {
	data = sanitizeUTF8(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))

	var lastErr error
	for _, delim := range delimiterAttempts {
		records, err := readAll(data, delim)
		if err != nil {
			lastErr = err
			continue
		}
		if len(records) == 0 {
			return nil, domain.ErrEmptyFile
		}

		header := canonicalHeader(records[0])
		if len(header) == 0 || header[0] != ColumnFoodName {
			lastErr = fmt.Errorf("header %v is not a food list", records[0])
			continue
		}

		names := make([]string, 0, len(records)-1)
		for _, record := range records[1:] {
			if isEmptyRecord(record) {
				continue
			}
			names = append(names, strings.TrimSpace(record[0]))
		}
		if len(names) == 0 {
			return nil, domain.ErrEmptyFile
		}
		return names, nil
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, lastErr)
}

func readAll(data []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// canonicalHeader trims header cells and rewrites known columns to their
// canonical spelling, so lookups are case-insensitive for the columns we own.
func canonicalHeader(record []string) []string {
	header := make([]string, len(record))
	for i, cell := range record {
		cell = strings.TrimSpace(cell)
		if canonical, ok := knownColumns[strings.ToLower(cell)]; ok {
			cell = canonical
		}
		header[i] = cell
	}
	return header
}

func containsAll(header, wanted []string) bool {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, name := range wanted {
		if !present[name] {
			return false
		}
	}
	return true
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement rune so
// the csv reader never sees broken encoding.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}
