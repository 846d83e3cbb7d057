// Package sqltypes defines the engine-neutral column type model shared by
// the schema package and the dialect layer.
//
// A Type is a tagged union: a Kind plus the numeric arguments that kind
// accepts (precision and scale for exact numerics, length for string and
// binary types). Types are immutable values — construct them with New or a
// kind-specific constructor and never modify them afterwards.
package sqltypes

import "github.com/sqlweft/sqlweft/internal/errs"

// Kind is the engine-neutral type category.
type Kind int

const (
	Integer Kind = iota
	SmallInteger
	Numeric
	Double
	Float
	Date
	Time
	DateTime
	Text
	Varchar
	Char
	Binary
	Blob
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case SmallInteger:
		return "smallinteger"
	case Numeric:
		return "numeric"
	case Double:
		return "double"
	case Float:
		return "float"
	case Date:
		return "date"
	case Time:
		return "time"
	case DateTime:
		return "datetime"
	case Text:
		return "text"
	case Varchar:
		return "varchar"
	case Char:
		return "char"
	case Binary:
		return "binary"
	case Blob:
		return "blob"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Kinds returns every type category exactly once, in declaration order.
// The dialect type registries are tested for totality against this list.
func Kinds() []Kind {
	return []Kind{
		Integer, SmallInteger, Numeric, Double, Float,
		Date, Time, DateTime,
		Text, Varchar, Char,
		Binary, Blob, Boolean,
	}
}

// Type is an immutable abstract column type. The Has* flags record which
// numeric arguments were supplied at construction; a zero value with the
// flag unset means "absent", never "zero".
type Type struct {
	Kind      Kind
	Precision int
	Scale     int
	Length    int

	HasPrecision bool
	HasScale     bool
	HasLength    bool
}

// Default precision and scale applied when a numeric type is constructed
// without arguments.
const (
	defaultNumericPrecision = 10
	defaultNumericScale     = 2
)

// New constructs a Type of the given kind from the numeric arguments
// captured by introspection. Kinds that take no arguments tolerate and drop
// extras (e.g. the display width in "int(11)").
func New(kind Kind, args ...int) (Type, error) {
	switch kind {
	case Numeric:
		return NewNumeric(args...)
	case Double:
		return NewDouble(args...)
	case Float:
		return NewFloat(args...)
	case Varchar:
		return NewVarchar(args...)
	case Char:
		return NewChar(args...)
	case Binary:
		return NewBinary(args...)
	case Integer, SmallInteger, Date, Time, DateTime, Text, Blob, Boolean:
		return Type{Kind: kind}, nil
	default:
		return Type{}, errs.Newf(errs.ErrKindInvalidInput, "unknown type kind %d", kind)
	}
}

// NewInteger returns the plain integer type.
func NewInteger() Type { return Type{Kind: Integer} }

// NewSmallInteger returns the small integer type.
func NewSmallInteger() Type { return Type{Kind: SmallInteger} }

// NewNumeric constructs an exact numeric type. With no arguments the
// default precision and scale apply; otherwise both must be given —
// precision and scale are independent and required together.
func NewNumeric(args ...int) (Type, error) {
	switch len(args) {
	case 0:
		return Type{
			Kind:      Numeric,
			Precision: defaultNumericPrecision, HasPrecision: true,
			Scale: defaultNumericScale, HasScale: true,
		}, nil
	case 2:
		return Type{
			Kind:      Numeric,
			Precision: args[0], HasPrecision: true,
			Scale: args[1], HasScale: true,
		}, nil
	default:
		return Type{}, errs.New(errs.ErrKindInvalidInput,
			"numeric type requires both precision and scale, or neither")
	}
}

// NewDouble constructs the high-precision floating type. Precision and
// scale must be supplied together or omitted together; exactly one is a
// construction error, raised before any rendering can happen.
func NewDouble(args ...int) (Type, error) {
	switch len(args) {
	case 0:
		return Type{Kind: Double}, nil
	case 2:
		return Type{
			Kind:      Double,
			Precision: args[0], HasPrecision: true,
			Scale: args[1], HasScale: true,
		}, nil
	default:
		return Type{}, errs.New(errs.ErrKindInvalidInput,
			"you must specify both precision and scale, or omit both altogether")
	}
}

// NewFloat constructs the floating type with an optional precision.
func NewFloat(args ...int) (Type, error) {
	switch len(args) {
	case 0:
		return Type{Kind: Float}, nil
	case 1:
		return Type{Kind: Float, Precision: args[0], HasPrecision: true}, nil
	default:
		return Type{}, errs.New(errs.ErrKindInvalidInput,
			"float type takes at most one precision argument")
	}
}

// NewVarchar constructs the variable-length string type with an optional
// length. Length-less varchars occur as the fallback for unrecognized
// vendor keywords.
func NewVarchar(args ...int) (Type, error) {
	return newLengthType(Varchar, args)
}

// NewChar constructs the fixed-length string type with an optional length.
func NewChar(args ...int) (Type, error) {
	return newLengthType(Char, args)
}

// NewBinary constructs the binary type with an optional length.
func NewBinary(args ...int) (Type, error) {
	return newLengthType(Binary, args)
}

// NewDate returns the calendar date type.
func NewDate() Type { return Type{Kind: Date} }

// NewTime returns the time-of-day type.
func NewTime() Type { return Type{Kind: Time} }

// NewDateTime returns the combined date and time type.
func NewDateTime() Type { return Type{Kind: DateTime} }

// NewText returns the unbounded text type.
func NewText() Type { return Type{Kind: Text} }

// NewBlob returns the unbounded binary type.
func NewBlob() Type { return Type{Kind: Blob} }

// NewBoolean returns the boolean type.
func NewBoolean() Type { return Type{Kind: Boolean} }

func newLengthType(kind Kind, args []int) (Type, error) {
	switch len(args) {
	case 0:
		return Type{Kind: kind}, nil
	case 1:
		return Type{Kind: kind, Length: args[0], HasLength: true}, nil
	default:
		return Type{}, errs.Newf(errs.ErrKindInvalidInput,
			"%s type takes at most one length argument", kind)
	}
}
