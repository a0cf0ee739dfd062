package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	MinLength = 8
	MaxLength = 128
)

var (
	ErrLengthTooShort     = errors.New("password length must be at least 8")
	ErrLengthTooLong      = errors.New("password length must be at most 128")
	ErrNoCharacterClasses = errors.New("at least one character class must be selected")
	ErrLengthInsufficient = errors.New("password length must be at least the number of selected character classes")
)

// GeneratorOptions selects the length and the character classes a generated
// password may draw from. Lowercase is a toggle like the other classes.
type GeneratorOptions struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Numbers   bool
	Special   bool
}

// DefaultOptions returns the defaults the shells use: 12 characters, all classes.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    12,
		Lowercase: true,
		Uppercase: true,
		Numbers:   true,
		Special:   true,
	}
}

// enabledClasses returns the charset of each enabled class in a fixed order.
func (o GeneratorOptions) enabledClasses() []string {
	var classes []string
	if o.Lowercase {
		classes = append(classes, lowercaseChars)
	}
	if o.Uppercase {
		classes = append(classes, uppercaseChars)
	}
	if o.Numbers {
		classes = append(classes, digitChars)
	}
	if o.Special {
		classes = append(classes, specialChars)
	}
	return classes
}

// Generate creates a random password from the enabled character classes using
// crypto/rand. Every enabled class is guaranteed to appear at least once: the
// first positions are reserved for one representative per class, then the rest
// are filled from the union alphabet and the whole string is shuffled so the
// reservation leaves no positional bias.
func Generate(opts GeneratorOptions) (string, error) {
	if opts.Length < MinLength {
		return "", ErrLengthTooShort
	}
	if opts.Length > MaxLength {
		return "", ErrLengthTooLong
	}

	classes := opts.enabledClasses()
	if len(classes) == 0 {
		return "", ErrNoCharacterClasses
	}
	if opts.Length < len(classes) {
		return "", ErrLengthInsufficient
	}

	var alphabet string
	for _, charset := range classes {
		alphabet += charset
	}

	result := make([]byte, opts.Length)

	for i, charset := range classes {
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	for i := len(classes); i < opts.Length; i++ {
		ch, err := randChar(alphabet)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := secureShuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a uniformly random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// secureShuffle performs a Fisher-Yates shuffle driven by crypto/rand.
func secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
