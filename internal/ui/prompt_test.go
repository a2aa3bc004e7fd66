package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("View full report?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "View full report? [y/N]: ", out.String())
		})
	}
}

func TestPrompterSequentialQuestions(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("n\ny\n"), &out)

	first, err := p.Confirm("View full report?")
	require.NoError(t, err)
	second, err := p.Confirm("Do you want to retry failed files?")
	require.NoError(t, err)

	assert.False(t, first)
	assert.True(t, second)
}
