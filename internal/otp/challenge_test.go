package otp

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webtrade_go/internal/domain"
)

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"bracketed", "Nhập mã tại vị trí: [A3] [C5] [G7]", []string{"A3", "C5", "G7"}},
		{"comma separated", "A3,B12, D1", []string{"A3", "B12", "D1"}},
		{"ignores symbols", "VPB100 A3", []string{"A3"}},
		{"lowercase ignored", "a3 b4", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCoordinates(tt.text))
		})
	}
}

func TestMatrixTable_Answer(t *testing.T) {
	tbl := testTable(t)

	t.Run("three valid", func(t *testing.T) {
		coords, answers, err := tbl.Answer("Vui lòng nhập: A3 C5 G7", DefaultChallengeSize)
		require.NoError(t, err)
		assert.Equal(t, []string{"A3", "C5", "G7"}, coords)
		assert.Equal(t, "QRK", strings.Join(answers, ""))
	})

	t.Run("invalid tokens filtered", func(t *testing.T) {
		coords, answers, err := tbl.Answer("A3 H2 C5 A9 G7", DefaultChallengeSize)
		require.NoError(t, err)
		assert.Equal(t, []string{"A3", "C5", "G7"}, coords)
		assert.Equal(t, []string{"Q", "R", "K"}, answers)
	})

	t.Run("too few", func(t *testing.T) {
		_, _, err := tbl.Answer("A3 H2 C5", DefaultChallengeSize)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInsufficientCoordinates))
		assert.Contains(t, err.Error(), "found 2, need 3")
	})

	t.Run("no minimum", func(t *testing.T) {
		coords, answers, err := tbl.Answer("nothing here", 0)
		require.NoError(t, err)
		assert.Empty(t, coords)
		assert.Empty(t, answers)
	})
}
