package password

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// ErrCommonPassword rejects plaintexts found in the breached-password set.
var ErrCommonPassword = errors.New("password is too common")

// bcrypt only consumes the first 72 bytes of input; anything longer must be
// truncated before hashing or the library returns an error.
const maxHashInput = 72

// Attacker model for crack-time estimates: 100 billion guesses per second.
const attemptsPerSecond = 1e11

// Strength categorizes entropy into human-readable buckets.
type Strength string

const (
	StrengthVeryWeak   Strength = "Very Weak"
	StrengthWeak       Strength = "Weak"
	StrengthModerate   Strength = "Moderate"
	StrengthStrong     Strength = "Strong"
	StrengthVeryStrong Strength = "Very Strong"
	StrengthUnknown    Strength = "Unknown"
)

// Report is the strength evaluation of a plaintext.
type Report struct {
	EntropyBits  float64
	Strength     Strength
	CrackSeconds float64
}

// Password is the hashed credential value object. It never retains the
// plaintext; the only way back is the one-way Verify.
type Password struct {
	Hash         string
	Strength     Strength
	EntropyBits  float64
	CrackSeconds float64
}

// Engine evaluates, hashes and verifies passwords. The dictionary is
// immutable after construction, so a single engine serves all requests.
type Engine struct {
	dict *Dictionary
	cost int
}

// NewEngine builds an engine around a breached-password dictionary.
// cost <= 0 selects the bcrypt default.
func NewEngine(dict *Dictionary, cost int) *Engine {
	if dict == nil {
		dict = EmptyDictionary()
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Engine{dict: dict, cost: cost}
}

// Evaluate computes entropy, strength category and estimated crack time for
// a plaintext. Entropy is log2(poolSize^length) with the pool built from the
// character classes present.
func (e *Engine) Evaluate(plain string) Report {
	pool := characterPoolSize(plain)
	entropy := 0.0
	if pool > 0 {
		entropy = float64(utf8.RuneCountInString(plain)) * math.Log2(float64(pool))
	}
	return Report{
		EntropyBits:  entropy,
		Strength:     strengthCategory(entropy),
		CrackSeconds: math.Pow(2, entropy) / attemptsPerSecond,
	}
}

// New constructs a Password from a plaintext: dictionary check, strength
// evaluation, then bcrypt hash. The plaintext is not stored.
func (e *Engine) New(plain string) (*Password, error) {
	if e.dict.Contains(plain) {
		return nil, ErrCommonPassword
	}
	report := e.Evaluate(plain)
	hash, err := bcrypt.GenerateFromPassword(truncate(plain), e.cost)
	if err != nil {
		return nil, err
	}
	return &Password{
		Hash:         string(hash),
		Strength:     report.Strength,
		EntropyBits:  report.EntropyBits,
		CrackSeconds: report.CrackSeconds,
	}, nil
}

// FromHash rehydrates a Password from storage. Plaintext-derived fields get
// neutral defaults since the plaintext is gone.
func FromHash(hash string) *Password {
	return &Password{Hash: hash, Strength: StrengthUnknown}
}

// Verify compares a plaintext against the stored hash in constant time,
// applying the same 72-byte truncation as hashing.
func (p *Password) Verify(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.Hash), truncate(plain)) == nil
}

// truncate caps the input at 72 bytes without splitting a multi-byte UTF-8
// sequence. Passwords differing only beyond that limit are indistinguishable,
// an accepted bcrypt tradeoff.
func truncate(plain string) []byte {
	if len(plain) <= maxHashInput {
		return []byte(plain)
	}
	b := []byte(plain)[:maxHashInput]
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return b
}

func characterPoolSize(plain string) int {
	pool := 0
	if strings.ContainsFunc(plain, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		pool += 26
	}
	if strings.ContainsFunc(plain, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		pool += 26
	}
	if strings.ContainsFunc(plain, func(r rune) bool { return r >= '0' && r <= '9' }) {
		pool += 10
	}
	if strings.ContainsFunc(plain, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9')
	}) {
		pool += 32
	}
	return pool
}

func strengthCategory(entropy float64) Strength {
	switch {
	case entropy < 40:
		return StrengthVeryWeak
	case entropy < 60:
		return StrengthWeak
	case entropy < 80:
		return StrengthModerate
	case entropy < 100:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}
