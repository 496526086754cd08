package query

import (
	"math"
	"math/rand/v2"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
)

// Source names used in errors, logs and span attributes.
const (
	SourceFruits   = "fruits"
	SourceVeggies  = "veggies"
	SourceIntegers = "integers"
)

// pcgStream is the fixed PCG stream selector; the seed picks the state.
const pcgStream = 0x5eed_c011_ec71_0e5

// Library holds the three source sequences and answers queries over them.
// Sources are fixed at construction.
type Library struct {
	fruits   Source[string]
	veggies  Source[string]
	integers Source[int]
	seed     int64

	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

type settings struct {
	cfg Config

	fruits      Source[string]
	veggies     Source[string]
	integers    Source[int]
	hasFruits   bool
	hasVeggies  bool
	hasIntegers bool

	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// Option configures a Library.
type Option func(*settings)

// WithConfig replaces the base configuration. Options applied after it win.
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.cfg = cfg.clone() }
}

// WithSeed seeds the integer sample generator.
func WithSeed(seed int64) Option {
	return func(s *settings) { s.cfg.Seed = seed }
}

// WithSampleSize sets the number of generated integers.
func WithSampleSize(n int) Option {
	return func(s *settings) { s.cfg.SampleSize = n }
}

// WithBounds sets the inclusive range of generated integers.
func WithBounds(minValue, maxValue int) Option {
	return func(s *settings) { s.cfg.MinValue, s.cfg.MaxValue = minValue, maxValue }
}

// WithFruits uses src as the fruit list. A nil src makes the source absent.
func WithFruits(src Source[string]) Option {
	return func(s *settings) { s.fruits, s.hasFruits = src.clone(), true }
}

// WithVeggies uses src as the veggie list. A nil src makes the source absent.
func WithVeggies(src Source[string]) Option {
	return func(s *settings) { s.veggies, s.hasVeggies = src.clone(), true }
}

// WithIntegers uses src instead of a generated sample. A nil src makes the
// source absent.
func WithIntegers(src Source[int]) Option {
	return func(s *settings) { s.integers, s.hasIntegers = src.clone(), true }
}

// WithLogger sets the logger queries report to.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithMetrics enables per-query metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithTracer records query spans on t instead of the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// New builds a Library. Without options it holds the default fruit and
// veggie lists and 1000 integers in [0, 1000] drawn with seed 0.
//
// New does not validate its settings: a non-positive sample size falls back
// to the default and reversed bounds are swapped. Use NewFromConfig for
// strict validation.
func New(opts ...Option) *Library {
	s := settings{cfg: Config{Seed: DefaultSeed}}
	for _, opt := range opts {
		opt(&s)
	}
	s.cfg.ApplyDefaults()
	if s.cfg.SampleSize < 0 {
		s.cfg.SampleSize = DefaultSampleSize
	}
	if s.cfg.MinValue > s.cfg.MaxValue {
		s.cfg.MinValue, s.cfg.MaxValue = s.cfg.MaxValue, s.cfg.MinValue
	}

	l := &Library{
		seed:    s.cfg.Seed,
		metrics: s.metrics,
		tracer:  s.tracer,
		log:     logger.Nop(),
	}
	if s.log != nil {
		l.log = s.log.WithComponent("query")
	}

	l.fruits = Texts(s.cfg.Fruits...)
	if s.hasFruits {
		l.fruits = s.fruits
	}
	l.veggies = Texts(s.cfg.Veggies...)
	if s.hasVeggies {
		l.veggies = s.veggies
	}
	if s.hasIntegers {
		l.integers = s.integers
	} else {
		l.integers = Sample(s.cfg.Seed, s.cfg.SampleSize, s.cfg.MinValue, s.cfg.MaxValue)
	}

	l.log.Debug("library initialized", logger.Fields(
		logger.FieldSeed, l.seed,
		SourceFruits, len(l.fruits),
		SourceVeggies, len(l.veggies),
		SourceIntegers, len(l.integers),
	))
	return l
}

// NewFromConfig validates cfg and builds a Library from it. opts are
// applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Library, error) {
	cfg = cfg.clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(append([]Option{WithConfig(cfg)}, opts...)...), nil
}

// Sample draws n integers uniformly from [minValue, maxValue] with a PCG
// generator seeded by seed. Equal arguments yield equal samples. Any bounds
// are accepted, including the full int range; reversed bounds are swapped.
func Sample(seed int64, n, minValue, maxValue int) Source[int] {
	n = max(n, 0)
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}
	r := rand.New(rand.NewPCG(uint64(seed), pcgStream))
	// width is computed in uint64 so the full int range cannot overflow.
	width := uint64(maxValue) - uint64(minValue)
	values := make([]int, n)
	out := make(Source[int], n)
	for i := range values {
		var offset uint64
		if width == math.MaxUint64 {
			offset = r.Uint64()
		} else {
			offset = r.Uint64N(width + 1)
		}
		values[i] = minValue + int(offset)
		out[i] = &values[i]
	}
	return out
}

// Seed returns the seed the integer sample was drawn with.
func (l *Library) Seed() int64 { return l.seed }

// Fruits returns a copy of the fruit list.
func (l *Library) Fruits() Source[string] { return l.fruits.clone() }

// Veggies returns a copy of the veggie list.
func (l *Library) Veggies() Source[string] { return l.veggies.clone() }

// Integers returns a copy of the integer sample.
func (l *Library) Integers() Source[int] { return l.integers.clone() }
