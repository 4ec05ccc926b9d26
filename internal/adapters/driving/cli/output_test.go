package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
)

func TestPageLine(t *testing.T) {
	tests := []struct {
		name     string
		p        domain.Pagination
		expected string
	}{
		{"single page", domain.Pagination{Page: 1, Pages: 1}, "[1]"},
		{"middle of many", domain.Pagination{Page: 6, Pages: 12}, "1 … 5 [6] 7 … 12"},
		{"near start", domain.Pagination{Page: 2, Pages: 12}, "1 [2] 3 4 … 12"},
		{"no pages", domain.Pagination{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pageLine(tt.p))
		})
	}
}

func TestScoreBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", scoreBar(50, 10))
	assert.Equal(t, "░░░░░░░░░░", scoreBar(-5, 10))
	assert.Equal(t, "██████████", scoreBar(150, 10))
}

func TestJoinOrDash(t *testing.T) {
	assert.Equal(t, "-", joinOrDash(nil))
	assert.Equal(t, "a, b", joinOrDash([]string{"a", "b"}))
}

func TestPrintTable_Plain(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	printTable(cmd, []string{"A", "B"}, [][]string{{"1", "2"}})

	assert.Equal(t, "A\tB\n1\t2\n", buf.String())
}
