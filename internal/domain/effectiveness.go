package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

// Label is the ordered effectiveness category. Its numeric value is the map colour code.
type Label int

const (
	NotEffective Label = iota + 1
	BelowEffective
	FairlyEffective
	Effective
	VeryEffective
)

// DisplayOrder is the fixed order of the distribution chart legend.
var DisplayOrder = []Label{VeryEffective, Effective, FairlyEffective, BelowEffective, NotEffective}

var labelKeys = map[Label]string{
	NotEffective:    "NOT_EFFECTIVE",
	BelowEffective:  "BELOW_EFFECTIVE",
	FairlyEffective: "FAIRLY_EFFECTIVE",
	Effective:       "EFFECTIVE",
	VeryEffective:   "VERY_EFFECTIVE",
}

var labelNames = map[Label]string{
	NotEffective:    "Tidak Efektif",
	BelowEffective:  "Dibawah Efektif",
	FairlyEffective: "Cukup Efektif",
	Effective:       "Efektif",
	VeryEffective:   "Sangat Efektif",
}

var labelColors = map[Label]string{
	NotEffective:    "red",
	BelowEffective:  "orange",
	FairlyEffective: "yellow",
	Effective:       "limegreen",
	VeryEffective:   "green",
}

// NoDataColor fills provinces without a rated record.
const NoDataColor = "gray"

func (l Label) Code() int {
	return int(l)
}

func (l Label) Key() string {
	if k, ok := labelKeys[l]; ok {
		return k
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// String returns the Indonesian display name.
func (l Label) String() string {
	if n, ok := labelNames[l]; ok {
		return n
	}
	return l.Key()
}

func (l Label) Color() string {
	if c, ok := labelColors[l]; ok {
		return c
	}
	return NoDataColor
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.Key()), nil
}

type RatingStatus string

const (
	StatusRated      RatingStatus = "rated"
	StatusUnrated    RatingStatus = "unrated"
	StatusOutOfRange RatingStatus = "out_of_range"
	// StatusNoData marks a province that has no record at all; only joins produce it.
	StatusNoData RatingStatus = "no_data"
)

// Rating is Rated(label) | Unrated | OutOfRange(ratio). Use the accessors, the zero value is not a rating.
type Rating struct {
	Status RatingStatus
	ratio  decimal.Decimal
	label  Label
}

func (r Rating) Ratio() (decimal.Decimal, bool) {
	if r.Status != StatusRated && r.Status != StatusOutOfRange {
		return decimal.Decimal{}, false
	}
	return r.ratio, true
}

func (r Rating) Label() (Label, bool) {
	if r.Status != StatusRated {
		return 0, false
	}
	return r.label, true
}

func (r Rating) Code() (int, bool) {
	l, ok := r.Label()
	if !ok {
		return 0, false
	}
	return l.Code(), true
}

func (r Rating) Color() string {
	if l, ok := r.Label(); ok {
		return l.Color()
	}
	return NoDataColor
}

// Err reports ratios that fall outside every bucket. Unrated is not an error.
func (r Rating) Err() error {
	if r.Status == StatusOutOfRange {
		return fmt.Errorf("%w: %s", constants.ErrRatioOutOfRange, r.ratio.String())
	}
	return nil
}

type bucket struct {
	upper decimal.Decimal
	label Label
}

// Right-closed intervals; the first one also holds 0.
var buckets = []bucket{
	{decimal.RequireFromString("0.2"), NotEffective},
	{decimal.RequireFromString("0.5"), BelowEffective},
	{decimal.RequireFromString("0.7"), FairlyEffective},
	{decimal.RequireFromString("0.9"), Effective},
	{decimal.RequireFromString("5"), VeryEffective},
}

// MaxRatio is the upper bound of the last bucket.
var MaxRatio = buckets[len(buckets)-1].upper

// Classify compares distributed against bound*collected so bucket edges are exact;
// the division is only used for the reported ratio.
func Classify(record ZakatRecord) Rating {
	collected, distributed := record.Collected, record.Distributed
	if collected.IsZero() {
		return Rating{Status: StatusUnrated}
	}
	ratio := distributed.Div(collected)

	if collected.IsNegative() {
		collected, distributed = collected.Neg(), distributed.Neg()
	}
	if distributed.IsNegative() {
		return Rating{Status: StatusOutOfRange, ratio: ratio}
	}
	for _, b := range buckets {
		if distributed.LessThanOrEqual(b.upper.Mul(collected)) {
			return Rating{Status: StatusRated, ratio: ratio, label: b.label}
		}
	}
	return Rating{Status: StatusOutOfRange, ratio: ratio}
}

func ClassifyRatio(ratio decimal.Decimal) Rating {
	if ratio.IsNegative() {
		return Rating{Status: StatusOutOfRange, ratio: ratio}
	}
	for _, b := range buckets {
		if ratio.LessThanOrEqual(b.upper) {
			return Rating{Status: StatusRated, ratio: ratio, label: b.label}
		}
	}
	return Rating{Status: StatusOutOfRange, ratio: ratio}
}
