package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/passmint/passmint-go/internal/breach"
	"github.com/passmint/passmint-go/internal/crypto"
	"github.com/passmint/passmint-go/internal/model"
)

// StrengthService evaluates password strength, optionally consulting a breach
// corpus through an injected checker.
type StrengthService struct {
	checker breach.Checker
	timeout time.Duration
}

// NewStrengthService creates a StrengthService. checker may be nil to disable
// breach lookups entirely; timeout bounds each lookup.
func NewStrengthService(checker breach.Checker, timeout time.Duration) *StrengthService {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &StrengthService{checker: checker, timeout: timeout}
}

// Evaluate scores the password. A positive breach result forces the rating to
// Weak; a failed lookup degrades to breach status unknown instead of failing
// the evaluation.
func (s *StrengthService) Evaluate(ctx context.Context, password string) model.StrengthReport {
	rep := crypto.EvaluateStrength(password)

	report := model.StrengthReport{
		Score:   rep.Score,
		Rating:  rep.Rating,
		Reasons: rep.Reasons,
	}

	if s.checker == nil {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	found, err := s.checker.Check(ctx, password)
	switch {
	case err != nil:
		slog.Warn("breach check unavailable", "error", err)
		report.Breach = model.BreachUnknown
	case found:
		rep = crypto.ApplyBreach(rep)
		report.Score = rep.Score
		report.Rating = rep.Rating
		report.Reasons = rep.Reasons
		report.Breach = model.BreachFound
	default:
		report.Breach = model.BreachClear
	}

	return report
}
