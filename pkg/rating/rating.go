// Package rating defines the score payload shared by the API and the client
// packages that submit ratings to it.
package rating

import "fmt"

const (
	// ScoreMin and ScoreMax bound each submitted criterion score.
	ScoreMin = 1
	ScoreMax = 10
)

// Scores holds the five criterion scores of a single rating submission
type Scores struct {
	Potency int `json:"potency" db:"potency"`
	Flavor  int `json:"flavor" db:"flavor"`
	Effects int `json:"effects" db:"effects"`
	Value   int `json:"value" db:"value"`
	Overall int `json:"overall" db:"overall"`
}

// Validate checks that every score is within [ScoreMin, ScoreMax]
func (s Scores) Validate() error {
	for _, c := range []struct {
		name  string
		value int
	}{
		{"potency", s.Potency},
		{"flavor", s.Flavor},
		{"effects", s.Effects},
		{"value", s.Value},
		{"overall", s.Overall},
	} {
		if c.value < ScoreMin || c.value > ScoreMax {
			return fmt.Errorf("%s must be between %d and %d", c.name, ScoreMin, ScoreMax)
		}
	}
	return nil
}
