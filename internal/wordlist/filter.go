package wordlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/wordmatch/internal/model"
)

var validate = validator.New()

// ErrNoUnits is returned when a source contains no units.
var ErrNoUnits = errors.New("units file is empty")

// NormalizeText converts s to NFC and collapses runs of whitespace.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Normalize returns a copy of units with normalized text. Pairs where both
// sides are blank are dropped.
func Normalize(units []model.SourceUnit) []model.SourceUnit {
	out := make([]model.SourceUnit, 0, len(units))
	for _, u := range units {
		nu := model.SourceUnit{
			ID:   strings.TrimSpace(u.ID),
			Name: NormalizeText(u.Name),
		}
		for _, p := range u.Pairs {
			np := model.SourcePair{EN: NormalizeText(p.EN), DE: NormalizeText(p.DE)}
			if np.EN == "" && np.DE == "" {
				continue
			}
			nu.Pairs = append(nu.Pairs, np)
		}
		out = append(out, nu)
	}
	return out
}

// Validate checks every unit and rejects duplicate ids.
func Validate(units []model.SourceUnit) error {
	if len(units) == 0 {
		return ErrNoUnits
	}
	seen := make(map[string]struct{}, len(units))
	for i, u := range units {
		if err := validate.Struct(u); err != nil {
			return fmt.Errorf("invalid unit %d (%q): %w", i+1, u.ID, err)
		}
		if _, ok := seen[u.ID]; ok {
			return fmt.Errorf("duplicate unit id %q", u.ID)
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}
