package ticket

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"qr-seat-reservation/internal/pkg/errs"
)

const (
	MaxDigits       = 18
	MaxPrefixLength = 16

	drawsPerTicket = 10
	minDraws       = 64
)

// CodeFormat renders codes as <prefix><zero-padded decimal of fixed width>.
type CodeFormat struct {
	prefix string
	digits int
}

func NewCodeFormat(prefix string, digits int) (CodeFormat, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) > MaxPrefixLength {
		return CodeFormat{}, errs.Detailf(errs.ErrValidation, "ticket prefix %q exceeds %d characters", prefix, MaxPrefixLength)
	}
	for _, r := range prefix {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return CodeFormat{}, errs.Detailf(errs.ErrValidation, "ticket prefix %q contains %q", prefix, r)
		}
	}
	if digits < 1 || digits > MaxDigits {
		return CodeFormat{}, errs.Detailf(errs.ErrValidation, "ticket digit width %d is outside 1..%d", digits, MaxDigits)
	}
	return CodeFormat{prefix: prefix, digits: digits}, nil
}

func (f CodeFormat) Prefix() string { return f.prefix }
func (f CodeFormat) Digits() int    { return f.digits }

// Space is the number of distinct codes the format can represent.
func (f CodeFormat) Space() int64 {
	space := int64(1)
	for range f.digits {
		space *= 10
	}
	return space
}

func (f CodeFormat) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", f.prefix, f.digits, n)
}

// Source returns a value in [0, n).
type Source func(n int64) int64

func DefaultSource() Source {
	return rand.Int64N
}

// Batch draws unique random codes for one generation run. The number of
// draws is bounded, so a crowded code space ends in ErrCapacity instead of
// spinning.
type Batch struct {
	format    CodeFormat
	source    Source
	remaining int
	issued    map[string]struct{}
}

// PlanBatch checks that count more codes fit next to the existing ones.
func PlanBatch(format CodeFormat, source Source, existing, count int) (*Batch, error) {
	if count <= 0 {
		return nil, errs.Detailf(errs.ErrValidation, "ticket count must be positive, got %d", count)
	}
	if existing < 0 {
		existing = 0
	}
	if int64(existing)+int64(count) > format.Space() {
		return nil, errs.Detailf(errs.ErrCapacity,
			"%d digits allow %d codes, %d exist and %d more were requested",
			format.digits, format.Space(), existing, count)
	}
	if source == nil {
		source = DefaultSource()
	}
	return &Batch{
		format:    format,
		source:    source,
		remaining: max(drawsPerTicket*count, minDraws),
		issued:    make(map[string]struct{}, count),
	}, nil
}

// Next returns a candidate not issued by this batch and not reported as taken.
func (b *Batch) Next(taken func(code string) (bool, error)) (string, error) {
	for b.remaining > 0 {
		b.remaining--
		code := b.format.Format(b.source(b.format.Space()))
		if _, dup := b.issued[code]; dup {
			continue
		}
		exists, err := taken(code)
		if err != nil {
			return "", err
		}
		b.issued[code] = struct{}{}
		if exists {
			continue
		}
		return code, nil
	}
	return "", errs.Detailf(errs.ErrCapacity, "no free code with prefix %q and %d digits found within the draw budget", b.format.prefix, b.format.digits)
}

func (b *Batch) Remaining() int {
	return b.remaining
}
