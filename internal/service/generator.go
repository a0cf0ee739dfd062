package service

import (
	"errors"
	"time"

	"github.com/passmint/passmint-go/internal/crypto"
	"github.com/passmint/passmint-go/internal/model"
)

const (
	// DefaultLength is used when a request leaves the length unset.
	DefaultLength = 12
	// DefaultCount is used when a request leaves the count unset.
	DefaultCount = 1
	// MaxCount caps a single batch so one request cannot ask for an
	// unbounded amount of work.
	MaxCount = 100
)

var (
	ErrCountTooSmall = errors.New("count must be at least 1")
	ErrCountTooLarge = errors.New("count must be at most 100")
)

// GeneratorService turns generation requests into batches of passwords and
// records them in the session history.
type GeneratorService struct {
	history *HistoryService
}

// NewGeneratorService creates a new GeneratorService. history may be nil when
// no session history is kept.
func NewGeneratorService(history *HistoryService) *GeneratorService {
	return &GeneratorService{history: history}
}

// Generate produces count passwords matching the requested criteria. Every
// password in the batch carries a UTC timestamp and a snapshot of the
// criteria that produced it.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	criteria := model.Criteria{
		Length:       req.Length,
		UseUppercase: boolOrDefault(req.UseUppercase, true),
		UseLowercase: boolOrDefault(req.UseLowercase, true),
		UseNumbers:   boolOrDefault(req.UseNumbers, true),
		UseSpecial:   boolOrDefault(req.UseSpecial, true),
		Count:        req.Count,
	}
	if criteria.Length == 0 {
		criteria.Length = DefaultLength
	}
	if criteria.Count == 0 {
		criteria.Count = DefaultCount
	}
	if criteria.Count < 1 {
		return model.GenerateResponse{}, ErrCountTooSmall
	}
	if criteria.Count > MaxCount {
		return model.GenerateResponse{}, ErrCountTooLarge
	}

	opts := crypto.GeneratorOptions{
		Length:    criteria.Length,
		Lowercase: criteria.UseLowercase,
		Uppercase: criteria.UseUppercase,
		Numbers:   criteria.UseNumbers,
		Special:   criteria.UseSpecial,
	}

	passwords := make([]model.GeneratedPassword, 0, criteria.Count)
	for i := 0; i < criteria.Count; i++ {
		value, err := crypto.Generate(opts)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		passwords = append(passwords, model.GeneratedPassword{
			Password:  value,
			CreatedAt: time.Now().UTC(),
			Criteria:  criteria,
		})
	}

	if s.history != nil {
		s.history.Append(passwords...)
	}

	return model.GenerateResponse{Passwords: passwords, Count: len(passwords)}, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
