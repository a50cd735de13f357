package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/savings-backend/internal/domain"
)

func TestPrompter_Defaults(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("\nabc\n1,500.25\n\n2\nyes\n\n"), &out)

	f, err := p.Float("rate: ", 3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	f, err = p.Float("rate: ", 3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, f, "malformed input falls back to the default")

	f, err = p.Float("amount: ", 0)
	require.NoError(t, err)
	assert.Equal(t, 1500.25, f)

	n, err := p.Int("months: ", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	freq, err := p.Frequency()
	require.NoError(t, err)
	assert.Equal(t, domain.CompoundMonthly, freq)

	key, err := p.Key("again? ")
	require.NoError(t, err)
	assert.Equal(t, 'y', key)

	key, err = p.Key("again? ")
	require.NoError(t, err)
	assert.Equal(t, rune(0), key)

	assert.Contains(t, out.String(), "rate: ")
	assert.Contains(t, out.String(), "Compound Frequency")
}

func TestPrompter_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("42"), io.Discard)

	n, err := p.Int("months: ", 12)
	require.NoError(t, err, "a final answer without newline is still read")
	assert.Equal(t, 42, n)

	_, err = p.Line("next: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_InvalidFrequencyDefaultsToDaily(t *testing.T) {
	p := NewPrompter(strings.NewReader("7\n"), io.Discard)

	freq, err := p.Frequency()
	require.NoError(t, err)
	assert.Equal(t, domain.CompoundDaily, freq)
}
