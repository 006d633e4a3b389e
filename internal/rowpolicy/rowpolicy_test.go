package rowpolicy

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("", Abort)
	require.NoError(t, err)
	assert.Equal(t, Abort, p)

	p, err = Parse(" Skip ", Abort)
	require.NoError(t, err)
	assert.Equal(t, Skip, p)

	_, err = Parse("ignore", Abort)
	assert.Error(t, err)
}

func TestParseErrorUnwrap(t *testing.T) {
	_, cause := strconv.ParseFloat("abc", 64)
	err := error(&ParseError{Path: "registros.txt", Line: 4, Err: cause})

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 4, pe.Line)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Contains(t, err.Error(), "registros.txt:4:")
}
