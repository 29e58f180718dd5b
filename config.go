package qcolor

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// AutoIterations selects the iteration count from the marking-set size.
const AutoIterations = -1

/*
Config holds the tunables of a coloring run. The zero value is not useful,
start from NewConfig and apply Options on top.
*/
type Config struct {
	MaxAttempts         int    // verification attempts before ErrNoColoringFound
	ResourceCeilingBits int    // largest simulated register, in qubits
	ExactCountBits      int    // count the marking set exactly up to this many qubits
	Workers             int    // pool workers used for one pass
	ChunkSize           int    // minimum indices per pool job
	ConcurrentAttempts  int    // attempts allowed in flight at once
	Seed                uint64 // base seed for measurement
	FixedIterations     int    // AutoIterations or a fixed Grover iteration count
	StatePrep           StatePrep
	Guess               GuessStrategy
}

func NewConfig() *Config {
	return &Config{
		MaxAttempts:         10,
		ResourceCeilingBits: 24,
		ExactCountBits:      20,
		Workers:             runtime.NumCPU(),
		ChunkSize:           4096,
		ConcurrentAttempts:  1,
		Seed:                1,
		FixedIterations:     AutoIterations,
		StatePrep:           UniformPrep,
		Guess:               &DoublingGuess{Initial: 1},
	}
}

// Option configures a Solver.
type Option func(*Config)

func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

func WithResourceCeiling(bits int) Option {
	return func(c *Config) {
		c.ResourceCeilingBits = bits
	}
}

// WithExactCountBits sets the largest state whose marking set is counted
// exactly. Zero disables counting and forces the doubling guess schedule.
func WithExactCountBits(bits int) Option {
	return func(c *Config) {
		c.ExactCountBits = bits
	}
}

func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

func WithChunkSize(n int) Option {
	return func(c *Config) {
		c.ChunkSize = n
	}
}

func WithConcurrentAttempts(n int) Option {
	return func(c *Config) {
		c.ConcurrentAttempts = n
	}
}

func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

func WithFixedIterations(r int) Option {
	return func(c *Config) {
		c.FixedIterations = r
	}
}

func WithStatePrep(prep StatePrep) Option {
	return func(c *Config) {
		c.StatePrep = prep
	}
}

func WithGuessStrategy(g GuessStrategy) Option {
	return func(c *Config) {
		c.Guess = g
	}
}

// WithConfig replaces the whole configuration, typically one built by LoadConfig.
func WithConfig(cfg *Config) Option {
	return func(c *Config) {
		*c = *cfg
	}
}

// normalize fills in anything an Option left unusable.
func (c *Config) normalize() {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.ChunkSize < 1 {
		c.ChunkSize = 1
	}
	if c.ConcurrentAttempts < 1 {
		c.ConcurrentAttempts = 1
	}
	if c.StatePrep == nil {
		c.StatePrep = UniformPrep
	}
	if c.Guess == nil {
		c.Guess = &DoublingGuess{Initial: 1}
	}
}

/*
NewViper returns a viper instance carrying the configuration defaults and
reading overrides from QCOLOR_* environment variables, so QCOLOR_MAX_ATTEMPTS
overrides the "max-attempts" key.
*/
func NewViper() *viper.Viper {
	defaults := NewConfig()

	v := viper.New()
	v.SetEnvPrefix("QCOLOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("max-attempts", defaults.MaxAttempts)
	v.SetDefault("ceiling-bits", defaults.ResourceCeilingBits)
	v.SetDefault("exact-bits", defaults.ExactCountBits)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("chunk-size", defaults.ChunkSize)
	v.SetDefault("concurrent", defaults.ConcurrentAttempts)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("iterations", defaults.FixedIterations)
	v.SetDefault("prep", "uniform")

	return v
}

// LoadConfig builds a Config from a viper instance prepared by NewViper.
func LoadConfig(v *viper.Viper) (*Config, error) {
	prep, err := StatePrepByName(v.GetString("prep"))
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	cfg := &Config{
		MaxAttempts:         v.GetInt("max-attempts"),
		ResourceCeilingBits: v.GetInt("ceiling-bits"),
		ExactCountBits:      v.GetInt("exact-bits"),
		Workers:             v.GetInt("workers"),
		ChunkSize:           v.GetInt("chunk-size"),
		ConcurrentAttempts:  v.GetInt("concurrent"),
		Seed:                v.GetUint64("seed"),
		FixedIterations:     v.GetInt("iterations"),
		StatePrep:           prep,
		Guess:               &DoublingGuess{Initial: 1},
	}
	cfg.normalize()

	return cfg, nil
}
