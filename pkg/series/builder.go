package series

import (
	"time"

	"github.com/sargas/network-rank/pkg/parser"
)

type pendingRecord struct {
	rec     parser.Record
	source  string
	lineNum int
}

// Builder pairs timestamps with samples in input order. A timestamp may come
// before or after its sample; the two are committed together once both are seen.
// Builder is not safe for concurrent use.
type Builder struct {
	dates       []time.Time
	percentiles []float64
	totals      []float64

	span      YearSpan
	firstYear int

	pending  *pendingRecord
	voidNext parser.Kind
	orphans  []Orphan
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add folds one classified record, read from line lineNum of source, into the
// series. KindNone records are ignored.
func (b *Builder) Add(rec parser.Record, source string, lineNum int) {
	if rec.Kind == parser.KindNone {
		return
	}

	if b.voidNext != parser.KindNone {
		voided := b.voidNext
		b.voidNext = parser.KindNone
		if rec.Kind == voided && b.pending == nil {
			return
		}
	}

	if b.pending == nil {
		b.pending = &pendingRecord{rec: rec, source: source, lineNum: lineNum}
		return
	}

	if b.pending.rec.Kind == rec.Kind {
		b.orphan(b.pending)
		b.pending = &pendingRecord{rec: rec, source: source, lineNum: lineNum}
		return
	}

	if rec.Kind == parser.KindTimestamp {
		b.commit(rec, b.pending.rec)
	} else {
		b.commit(b.pending.rec, rec)
	}
	b.pending = nil
}

// Discard accounts for a malformed record of the given kind that was skipped.
// Its partner is dropped too, so one bad line never shifts later pairs.
func (b *Builder) Discard(kind parser.Kind) {
	if b.pending == nil && b.voidNext == kind {
		// The partner of an earlier discarded record: the pair is gone.
		b.voidNext = parser.KindNone
		return
	}
	if b.pending != nil {
		if b.pending.rec.Kind != kind {
			b.pending = nil
			return
		}
		// Two records of one kind in a row: the earlier one lost its partner.
		b.orphan(b.pending)
		b.pending = nil
	}
	b.voidNext = complement(kind)
}

// YearSpan returns the year variance of the dates committed so far.
func (b *Builder) YearSpan() YearSpan {
	return b.span
}

// Len returns the number of committed pairs.
func (b *Builder) Len() int {
	return len(b.dates)
}

// Build returns the finished series. Any record left without a counterpart
// makes it fail with an *UnpairedRecordError.
func (b *Builder) Build() (*Series, error) {
	orphans := b.orphans
	if b.pending != nil {
		orphans = append(orphans, b.pending.orphan())
	}
	if len(orphans) > 0 {
		return nil, &UnpairedRecordError{Orphans: orphans}
	}

	return &Series{
		Dates:       b.dates,
		Percentiles: b.percentiles,
		Totals:      b.totals,
		YearSpan:    b.span,
	}, nil
}

func (b *Builder) commit(ts, sample parser.Record) {
	b.dates = append(b.dates, ts.Time)
	b.percentiles = append(b.percentiles, sample.Percentile())
	b.totals = append(b.totals, float64(sample.Total))

	year := ts.Time.Year()
	switch b.span {
	case YearSpanEmpty:
		b.span = YearSpanUniform
		b.firstYear = year
	case YearSpanUniform:
		if year != b.firstYear {
			b.span = YearSpanVaries
		}
	}
}

func (b *Builder) orphan(p *pendingRecord) {
	b.orphans = append(b.orphans, p.orphan())
}

func (p *pendingRecord) orphan() Orphan {
	return Orphan{Kind: p.rec.Kind, Source: p.source, LineNum: p.lineNum}
}

func complement(kind parser.Kind) parser.Kind {
	switch kind {
	case parser.KindSample:
		return parser.KindTimestamp
	case parser.KindTimestamp:
		return parser.KindSample
	default:
		return parser.KindNone
	}
}
