package password

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Dictionary is a read-only set of known-breached passwords. It is loaded
// once at process start and never mutated afterwards, so lookups are safe
// from any goroutine.
type Dictionary struct {
	set map[string]struct{}
}

// EmptyDictionary returns a dictionary that matches nothing.
func EmptyDictionary() *Dictionary {
	return &Dictionary{set: map[string]struct{}{}}
}

// LoadDictionary reads a breached-password CSV and returns the set of
// passwords found in its second column. A missing or unreadable file is a
// deliberate availability tradeoff: the check degrades to a no-op and the
// condition is logged, not fatal.
func LoadDictionary(path string, logger *logrus.Logger) *Dictionary {
	f, err := os.Open(path)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("path", path).Warn("common-password dictionary unavailable, check disabled")
		}
		return EmptyDictionary()
	}
	defer func() { _ = f.Close() }()

	d, err := readDictionary(f)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("path", path).Warn("common-password dictionary unreadable, check disabled")
		}
		return EmptyDictionary()
	}
	if logger != nil {
		logger.WithField("count", d.Len()).Info("common-password dictionary loaded")
	}
	return d
}

func readDictionary(r io.Reader) (*Dictionary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	set := make(map[string]struct{})
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		if rec[1] != "" {
			set[rec[1]] = struct{}{}
		}
	}
	return &Dictionary{set: set}, nil
}

// Contains reports whether the plaintext is a known common password.
func (d *Dictionary) Contains(plain string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[plain]
	return ok
}

// Len returns the number of entries loaded.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.set)
}
