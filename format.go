package prefs

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind declares how an entry's text value is interpreted.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindFloat
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	default:
		return "text"
	}
}

// Numeric reports whether values of this kind carry bounds.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// Format describes the bounds and default of an entry. A Format without
// bounds accepts any value of its kind.
type Format struct {
	Minimum  float64
	Maximum  float64
	Default  string
	Decimals int

	bounded bool
}

// FormatOption configures a Format on creation.
type FormatOption func(*Format)

// WithBounds sets the inclusive numeric range.
func WithBounds(minimum, maximum float64) FormatOption {
	return func(f *Format) {
		f.Minimum = minimum
		f.Maximum = maximum
		f.bounded = true
	}
}

// WithDefault sets the fallback value used on reset.
func WithDefault(value string) FormatOption {
	return func(f *Format) {
		f.Default = value
	}
}

// WithDecimals sets the rounding precision applied to bounds and to float
// values written through Entry.SetFloat.
func WithDecimals(decimals int) FormatOption {
	return func(f *Format) {
		if decimals < 0 {
			decimals = 0
		}
		f.Decimals = decimals
	}
}

// NewFormat builds a Format. Bounds are rounded to the configured decimals.
func NewFormat(opts ...FormatOption) *Format {
	f := &Format{
		Minimum: math.Inf(-1),
		Maximum: math.Inf(1),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.bounded {
		f.Minimum = f.round(f.Minimum)
		f.Maximum = f.round(f.Maximum)
	}
	return f
}

// Bounded reports whether a range has been set.
func (f *Format) Bounded() bool {
	return f != nil && f.bounded
}

// Allows reports whether text parses as kind and lies inside the bounds.
func (f *Format) Allows(kind Kind, text string) bool {
	switch kind {
	case KindInteger:
		value, err := strconv.Atoi(text)
		if err != nil {
			return false
		}
		return f.contains(float64(value))
	case KindFloat:
		value, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(value) {
			return false
		}
		return f.contains(value)
	case KindBoolean:
		_, err := strconv.ParseBool(text)
		return err == nil
	default:
		return true
	}
}

func (f *Format) contains(value float64) bool {
	if !f.Bounded() {
		return true
	}
	return value >= f.Minimum && value <= f.Maximum
}

func (f *Format) round(value float64) float64 {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(int32(f.Decimals)).InexactFloat64()
}

func (f *Format) formatFloat(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(int32(f.Decimals))
}

func (f *Format) clone() *Format {
	if f == nil {
		return NewFormat()
	}
	out := *f
	return &out
}
