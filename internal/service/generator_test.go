package service

import (
	"errors"
	"testing"

	"github.com/passmint/passmint-go/internal/crypto"
	"github.com/passmint/passmint-go/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestGenerate_Defaults(t *testing.T) {
	svc := NewGeneratorService(nil)
	resp, err := svc.Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("expected count 1, got %d", resp.Count)
	}
	if len(resp.Passwords) != 1 {
		t.Fatalf("expected 1 password, got %d", len(resp.Passwords))
	}
	if len(resp.Passwords[0].Password) != DefaultLength {
		t.Errorf("expected password length %d, got %d", DefaultLength, len(resp.Passwords[0].Password))
	}
}

func TestGenerate_Batch(t *testing.T) {
	svc := NewGeneratorService(nil)
	resp, err := svc.Generate(model.GenerateRequest{Length: 16, Count: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 5 {
		t.Errorf("expected count 5, got %d", resp.Count)
	}
	for i, p := range resp.Passwords {
		if len(p.Password) != 16 {
			t.Errorf("password %d: expected length 16, got %d", i, len(p.Password))
		}
		if p.CreatedAt.IsZero() {
			t.Errorf("password %d: timestamp not set", i)
		}
		if p.Criteria.Length != 16 || p.Criteria.Count != 5 {
			t.Errorf("password %d: criteria snapshot = %+v", i, p.Criteria)
		}
	}
}

func TestGenerate_CustomClasses(t *testing.T) {
	svc := NewGeneratorService(nil)
	resp, err := svc.Generate(model.GenerateRequest{
		Length:       32,
		UseUppercase: boolPtr(true),
		UseLowercase: boolPtr(true),
		UseNumbers:   boolPtr(false),
		UseSpecial:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range resp.Passwords[0].Password {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
		}
	}
	if resp.Passwords[0].Criteria.UseNumbers {
		t.Error("criteria snapshot should record numbers as disabled")
	}
}

func TestGenerate_LengthBoundaries(t *testing.T) {
	svc := NewGeneratorService(nil)

	if _, err := svc.Generate(model.GenerateRequest{Length: 7}); !errors.Is(err, crypto.ErrLengthTooShort) {
		t.Errorf("length 7: error = %v, want %v", err, crypto.ErrLengthTooShort)
	}
	if _, err := svc.Generate(model.GenerateRequest{Length: 129}); !errors.Is(err, crypto.ErrLengthTooLong) {
		t.Errorf("length 129: error = %v, want %v", err, crypto.ErrLengthTooLong)
	}
	if _, err := svc.Generate(model.GenerateRequest{Length: 8}); err != nil {
		t.Errorf("length 8: unexpected error: %v", err)
	}
	if _, err := svc.Generate(model.GenerateRequest{Length: 128}); err != nil {
		t.Errorf("length 128: unexpected error: %v", err)
	}
}

func TestGenerate_NoCharacterClasses(t *testing.T) {
	svc := NewGeneratorService(nil)
	_, err := svc.Generate(model.GenerateRequest{
		Length:       16,
		UseUppercase: boolPtr(false),
		UseLowercase: boolPtr(false),
		UseNumbers:   boolPtr(false),
		UseSpecial:   boolPtr(false),
	})
	if !errors.Is(err, crypto.ErrNoCharacterClasses) {
		t.Errorf("error = %v, want %v", err, crypto.ErrNoCharacterClasses)
	}
}

func TestGenerate_CountBounds(t *testing.T) {
	svc := NewGeneratorService(nil)

	if _, err := svc.Generate(model.GenerateRequest{Count: -1}); !errors.Is(err, ErrCountTooSmall) {
		t.Errorf("count -1: error = %v, want %v", err, ErrCountTooSmall)
	}
	if _, err := svc.Generate(model.GenerateRequest{Count: MaxCount + 1}); !errors.Is(err, ErrCountTooLarge) {
		t.Errorf("count %d: error = %v, want %v", MaxCount+1, err, ErrCountTooLarge)
	}
}

func TestGenerate_AppendsToHistory(t *testing.T) {
	history := NewHistoryService()
	svc := NewGeneratorService(history)

	if _, err := svc.Generate(model.GenerateRequest{Count: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(history.List()); got != 3 {
		t.Errorf("history length = %d, want 3", got)
	}
}
