package sqltypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlweft/sqlweft/internal/errs"
)

func TestNewDouble_ArgumentValidation(t *testing.T) {
	t.Run("no args", func(t *testing.T) {
		typ, err := NewDouble()
		require.NoError(t, err)
		assert.False(t, typ.HasPrecision)
		assert.False(t, typ.HasScale)
	})

	t.Run("both args", func(t *testing.T) {
		typ, err := NewDouble(10, 4)
		require.NoError(t, err)
		assert.Equal(t, 10, typ.Precision)
		assert.Equal(t, 4, typ.Scale)
		assert.True(t, typ.HasPrecision)
		assert.True(t, typ.HasScale)
	})

	t.Run("precision without scale", func(t *testing.T) {
		_, err := NewDouble(10)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidInput(err))
	})
}

func TestNewNumeric_Defaults(t *testing.T) {
	typ, err := NewNumeric()
	require.NoError(t, err)
	assert.Equal(t, 10, typ.Precision)
	assert.Equal(t, 2, typ.Scale)

	_, err = NewNumeric(8)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestNewFloat(t *testing.T) {
	typ, err := NewFloat()
	require.NoError(t, err)
	assert.False(t, typ.HasPrecision)

	typ, err = NewFloat(24)
	require.NoError(t, err)
	assert.Equal(t, 24, typ.Precision)

	_, err = NewFloat(24, 2)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestNew_DispatchesEveryKind(t *testing.T) {
	for _, kind := range Kinds() {
		typ, err := New(kind)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, typ.Kind)
	}
}

func TestNew_DropsDisplayWidthForPlainKinds(t *testing.T) {
	// "int(11)" reflects with a display width argument that plain integer
	// types do not carry.
	typ, err := New(Integer, 11)
	require.NoError(t, err)
	assert.Equal(t, Integer, typ.Kind)
	assert.False(t, typ.HasLength)
	assert.False(t, typ.HasPrecision)
}

func TestNewVarchar_Length(t *testing.T) {
	typ, err := NewVarchar(255)
	require.NoError(t, err)
	assert.Equal(t, 255, typ.Length)
	assert.True(t, typ.HasLength)

	typ, err = NewVarchar()
	require.NoError(t, err)
	assert.False(t, typ.HasLength)

	_, err = NewVarchar(1, 2)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestKinds_Unique(t *testing.T) {
	seen := make(map[Kind]bool)
	for _, k := range Kinds() {
		assert.False(t, seen[k], "kind %s listed twice", k)
		seen[k] = true
		assert.NotEqual(t, "unknown", k.String())
	}
}
