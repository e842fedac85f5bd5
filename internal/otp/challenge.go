package otp

import (
	"fmt"
	"regexp"

	"webtrade_go/internal/domain"
)

// DefaultChallengeSize is how many coordinates the web-trading login asks for.
const DefaultChallengeSize = 3

var coordinatePattern = regexp.MustCompile(`\b[A-Z][0-9]+\b`)

// ExtractCoordinates pulls coordinate-shaped tokens out of raw challenge text
// in order of appearance. Tokens are not checked against any table.
func ExtractCoordinates(text string) []string {
	return coordinatePattern.FindAllString(text, -1)
}

// Answer extracts coordinates from challenge text, keeps the ones valid for the
// table and resolves them. It fails with ErrInsufficientCoordinates when fewer
// than min coordinates survive filtering.
func (t *MatrixTable) Answer(text string, min int) (coords []string, answers []string, err error) {
	for _, c := range ExtractCoordinates(text) {
		if t.ValidateCoordinate(c) {
			coords = append(coords, c)
		}
	}
	if len(coords) < min {
		return nil, nil, fmt.Errorf("%w: found %d, need %d in %q", domain.ErrInsufficientCoordinates, len(coords), min, text)
	}

	answers, err = t.Resolve(coords)
	if err != nil {
		return nil, nil, err
	}
	return coords, answers, nil
}
