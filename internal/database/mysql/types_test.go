package mysql

import (
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlweft/sqlweft/internal/sqltypes"
)

func TestTypeSpec(t *testing.T) {
	mustType := func(typ sqltypes.Type, err error) sqltypes.Type {
		require.NoError(t, err)
		return typ
	}

	tests := []struct {
		name string
		typ  sqltypes.Type
		want string
	}{
		{"integer", sqltypes.NewInteger(), "INTEGER"},
		{"smallint", sqltypes.NewSmallInteger(), "SMALLINT"},
		{"numeric", mustType(sqltypes.NewNumeric(10, 2)), "NUMERIC(10, 2)"},
		{"double plain", mustType(sqltypes.NewDouble()), "DOUBLE"},
		{"double parameterized", mustType(sqltypes.NewDouble(16, 4)), "DOUBLE(16, 4)"},
		{"float plain", mustType(sqltypes.NewFloat()), "FLOAT"},
		{"float parameterized", mustType(sqltypes.NewFloat(24)), "FLOAT(24)"},
		{"date", sqltypes.NewDate(), "DATE"},
		{"time", sqltypes.NewTime(), "TIME"},
		{"datetime", sqltypes.NewDateTime(), "DATETIME"},
		{"text", sqltypes.NewText(), "TEXT"},
		{"varchar", mustType(sqltypes.NewVarchar(120)), "VARCHAR(120)"},
		{"varchar lengthless", mustType(sqltypes.NewVarchar()), "VARCHAR"},
		{"char", mustType(sqltypes.NewChar(2)), "CHAR(2)"},
		{"short binary", mustType(sqltypes.NewBinary(16)), "BINARY(16)"},
		{"binary at boundary", mustType(sqltypes.NewBinary(255)), "BINARY(255)"},
		{"long binary", mustType(sqltypes.NewBinary(256)), "BLOB"},
		{"binary lengthless", mustType(sqltypes.NewBinary()), "BLOB"},
		{"blob", sqltypes.NewBlob(), "BLOB"},
		{"boolean", sqltypes.NewBoolean(), "BOOLEAN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeSpec(tt.typ))
		})
	}
}

func TestRegistryCoversEveryKind(t *testing.T) {
	for _, kind := range sqltypes.Kinds() {
		_, ok := colspecs[kind]
		assert.True(t, ok, "no descriptor registered for kind %s", kind)
	}
}

func TestTypeFromKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		args    []int
		want    sqltypes.Kind
	}{
		{"int", []int{11}, sqltypes.Integer},
		{"smallint", nil, sqltypes.SmallInteger},
		{"tinyint", []int{1}, sqltypes.SmallInteger},
		{"varchar", []int{255}, sqltypes.Varchar},
		{"char", []int{2}, sqltypes.Char},
		{"text", nil, sqltypes.Text},
		{"decimal", []int{10, 2}, sqltypes.Numeric},
		{"float", []int{24}, sqltypes.Float},
		{"double", []int{16, 4}, sqltypes.Double},
		{"timestamp", nil, sqltypes.DateTime},
		{"datetime", nil, sqltypes.DateTime},
		{"date", nil, sqltypes.Date},
		{"time", nil, sqltypes.Time},
		{"binary", []int{16}, sqltypes.Binary},
		{"blob", nil, sqltypes.Blob},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			typ, err := TypeFromKeyword(tt.keyword, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ.Kind)
		})
	}
}

func TestTypeFromKeyword_ParameterizedDouble(t *testing.T) {
	typ, err := TypeFromKeyword("double", 16, 4)
	require.NoError(t, err)
	assert.Equal(t, "DOUBLE(16, 4)", TypeSpec(typ))

	// a lone precision is a construction error, surfaced before rendering
	_, err = TypeFromKeyword("double", 16)
	require.Error(t, err)
}

func TestTypeFromKeyword_UnknownFallsBackToVarchar(t *testing.T) {
	typ, err := TypeFromKeyword("enum")
	require.NoError(t, err)
	assert.Equal(t, sqltypes.Varchar, typ.Kind)
	assert.False(t, typ.HasLength)

	typ, err = TypeFromKeyword("geometry", 4)
	require.NoError(t, err)
	assert.Equal(t, sqltypes.Varchar, typ.Kind)
	assert.Equal(t, 4, typ.Length)
}

func TestConvertValue_Time(t *testing.T) {
	raw := 14*time.Hour + 30*time.Minute + 15*time.Second

	got, err := ConvertValue(sqltypes.NewTime(), raw)
	require.NoError(t, err)
	assert.Equal(t, civil.Time{Hour: 14, Minute: 30, Second: 15}, got)

	// text-protocol results arrive as bytes
	got, err = ConvertValue(sqltypes.NewTime(), []byte("09:05:00"))
	require.NoError(t, err)
	assert.Equal(t, civil.Time{Hour: 9, Minute: 5}, got)

	// absent raw value maps to absent result
	got, err = ConvertValue(sqltypes.NewTime(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConvertValue_BinaryKeepsNullPadding(t *testing.T) {
	// BINARY(8) pads stored values with NUL bytes on read. The conversion
	// rule must hand the padding through untouched.
	typ, err := sqltypes.NewBinary(8)
	require.NoError(t, err)

	raw := []byte{0xDE, 0xAD, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	got, err := ConvertValue(typ, raw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Len(t, got, 8)
}

func TestConvertValue_PassThroughKinds(t *testing.T) {
	got, err := ConvertValue(sqltypes.NewInteger(), int64(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}
