package model

import "time"

// Criteria captures the user-selected parameters for one generation request.
// JSON keys match the export schema, so a criteria snapshot serializes the
// same way everywhere.
type Criteria struct {
	Length       int  `json:"length"`
	UseUppercase bool `json:"use_uppercase"`
	UseLowercase bool `json:"use_lowercase"`
	UseNumbers   bool `json:"use_numbers"`
	UseSpecial   bool `json:"use_special"`
	Count        int  `json:"count"`
}

// GeneratedPassword is one generated password together with the moment it was
// created and a snapshot of the criteria that produced it. Immutable once
// created.
type GeneratedPassword struct {
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"timestamp"`
	Criteria  Criteria  `json:"criteria"`
}

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length       int   `json:"length"`
	UseUppercase *bool `json:"use_uppercase"`
	UseLowercase *bool `json:"use_lowercase"`
	UseNumbers   *bool `json:"use_numbers"`
	UseSpecial   *bool `json:"use_special"`
	Count        int   `json:"count"`
}

// GenerateResponse carries a batch of generated passwords.
type GenerateResponse struct {
	Passwords []GeneratedPassword `json:"passwords"`
	Count     int                 `json:"count"`
}

// EvaluateRequest represents a strength evaluation request.
type EvaluateRequest struct {
	Password string `json:"password"`
}

// Breach status values reported alongside a strength evaluation.
const (
	BreachFound   = "found"
	BreachClear   = "clear"
	BreachUnknown = "unknown"
)

// StrengthReport is the evaluation result returned to the shells. Breach is
// empty when no breach checker is configured.
type StrengthReport struct {
	Score   int      `json:"score"`
	Rating  string   `json:"rating"`
	Reasons []string `json:"reasons"`
	Breach  string   `json:"breach,omitempty"`
}

// ImportResponse reports how many entries an import added to the history.
type ImportResponse struct {
	Imported int `json:"imported"`
}
