package domain

// RawRow is one parsed CSV data row, keyed by header column name. Produced by
// the parser, consumed by the validator; insertion order is irrelevant.
type RawRow map[string]string

// ValidatedRow is a structurally valid, enrichment-attempted row. Immutable
// once created. Resolved=false means the nutrition lookup found no match for
// FoodName; the row still proceeds to aggregation with Nutrition=nil so the
// user can see and fix the mismatch after import.
type ValidatedRow struct {
	Date      string       `json:"date"` // YYYY-MM-DD
	MealType  MealType     `json:"mealType"`
	FoodName  string       `json:"foodName"`
	Grams     float64      `json:"grams"`
	Notes     string       `json:"notes,omitempty"`
	Nutrition *ForQuantity `json:"nutrition,omitempty"`
	Resolved  bool         `json:"resolved"`
}

// ImportIssue records why a row or a draft failed during an import run.
// Row is the 1-based file row (header included), 0 for draft-level issues,
// which carry the draft's date/mealType key in Group instead.
type ImportIssue struct {
	Row      int      `json:"row,omitempty"`
	Group    string   `json:"group,omitempty"`
	Messages []string `json:"messages"`
}

// ImportSummary is the terminal result of an import run. Succeeded counts
// drafts persisted without error, Attempted counts all drafts produced by
// aggregation; Succeeded <= Attempted always holds. Row-level rejections
// appear in Issues but are not counted in Attempted.
type ImportSummary struct {
	Succeeded int           `json:"succeeded"`
	Attempted int           `json:"attempted"`
	Issues    []ImportIssue `json:"issues"`
}

// ImportPhase is the stage an import run is in. Failed is reachable only
// from Parsing; every later stage degrades to partial success inside Done.
type ImportPhase string

const (
	PhaseIdle        ImportPhase = "idle"
	PhaseParsing     ImportPhase = "parsing"
	PhaseValidating  ImportPhase = "validating"
	PhaseAggregating ImportPhase = "aggregating"
	PhasePersisting  ImportPhase = "persisting"
	PhaseDone        ImportPhase = "done"
	PhaseFailed      ImportPhase = "failed"
)

// WeeklyGrid assigns food names to day/meal-type cells for the weekly
// planner path. Keys are lowercase English weekday names ("monday" ..
// "sunday"); missing days and empty cells are simply skipped.
type WeeklyGrid map[string]map[string][]string

// Weekdays lists grid day names in ordinal order, Monday first. A cell's
// target date is today plus the day's position in this slice.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}
