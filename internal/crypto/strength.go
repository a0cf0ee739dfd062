package crypto

import "strings"

// Ratings for the numeric strength score, weakest to strongest.
const (
	RatingWeak       = "Weak"
	RatingFair       = "Fair"
	RatingStrong     = "Strong"
	RatingVeryStrong = "VeryStrong"
)

// Reasons attached to strength reports. Exported so callers can match on them.
const (
	ReasonTooShort      = "password is too short (minimum 8 characters)"
	ReasonBelowTwelve   = "use at least 12 characters"
	ReasonAddLowercase  = "add lowercase letters"
	ReasonAddUppercase  = "add uppercase letters"
	ReasonAddNumbers    = "add numbers"
	ReasonAddSpecial    = "add special characters"
	ReasonCommonPattern = "avoid common patterns"
	ReasonSequential    = "avoid sequential characters"
	ReasonRepeated      = "avoid repeated characters"
	ReasonBreached      = "found in breach corpus"
)

// commonPatterns are substrings that dominate breached-password corpora,
// matched case-insensitively.
var commonPatterns = []string{"123", "abc", "qwerty", "password", "admin", "welcome"}

// Report is the outcome of a strength evaluation: a 0-100 score, the rating
// band it falls in, and the ordered reasons behind every deduction.
type Report struct {
	Score   int      `json:"score"`
	Rating  string   `json:"rating"`
	Reasons []string `json:"reasons"`
}

// EvaluateStrength scores a password with a set of fixed heuristics. It is a
// pure function: no randomness, no I/O, and it never fails. Breach-corpus
// results are applied by the caller via ApplyBreach.
func EvaluateStrength(password string) Report {
	var r Report

	length := len([]rune(password))
	switch {
	case length >= 16:
		r.Score += 40
	case length >= 12:
		r.Score += 30
	case length >= MinLength:
		r.Score += 20
		r.Reasons = append(r.Reasons, ReasonBelowTwelve)
	default:
		r.Reasons = append(r.Reasons, ReasonTooShort)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	for _, class := range []struct {
		present bool
		reason  string
	}{
		{hasLower, ReasonAddLowercase},
		{hasUpper, ReasonAddUppercase},
		{hasDigit, ReasonAddNumbers},
		{hasSpecial, ReasonAddSpecial},
	} {
		if class.present {
			r.Score += 10
		} else {
			r.Reasons = append(r.Reasons, class.reason)
		}
	}

	lowered := strings.ToLower(password)
	for _, pattern := range commonPatterns {
		if strings.Contains(lowered, pattern) {
			r.Score -= 20
			r.Reasons = append(r.Reasons, ReasonCommonPattern)
			break
		}
	}

	if hasSequentialRun(password) {
		r.Score -= 15
		r.Reasons = append(r.Reasons, ReasonSequential)
	}
	if hasRepeatedRun(password) {
		r.Score -= 15
		r.Reasons = append(r.Reasons, ReasonRepeated)
	}

	if r.Score < 0 {
		r.Score = 0
	}
	if r.Score > 100 {
		r.Score = 100
	}

	r.Rating = ratingFor(r.Score)
	if length < MinLength {
		// Anything under the minimum length is Weak no matter what else it has.
		r.Rating = RatingWeak
	}

	return r
}

// ApplyBreach folds a positive breach-corpus result into a report: the score
// drops to zero and the rating to Weak regardless of the other heuristics.
func ApplyBreach(r Report) Report {
	r.Score = 0
	r.Rating = RatingWeak
	r.Reasons = append(r.Reasons, ReasonBreached)
	return r
}

func ratingFor(score int) string {
	switch {
	case score >= 80:
		return RatingVeryStrong
	case score >= 60:
		return RatingStrong
	case score >= 40:
		return RatingFair
	default:
		return RatingWeak
	}
}

// hasSequentialRun reports whether the password contains three or more
// characters that ascend or descend by one code point, like "abc" or "321".
func hasSequentialRun(password string) bool {
	rs := []rune(password)
	for i := 0; i+2 < len(rs); i++ {
		if rs[i+1] == rs[i]+1 && rs[i+2] == rs[i]+2 {
			return true
		}
		if rs[i+1] == rs[i]-1 && rs[i+2] == rs[i]-2 {
			return true
		}
	}
	return false
}

// hasRepeatedRun reports whether the password contains the same character
// three or more times in a row.
func hasRepeatedRun(password string) bool {
	rs := []rune(password)
	for i := 0; i+2 < len(rs); i++ {
		if rs[i] == rs[i+1] && rs[i+1] == rs[i+2] {
			return true
		}
	}
	return false
}
