package connector

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/flexsql/dialect"
)

var (
	ErrInvalidConfig = errors.New("connector: invalid config")
	ErrNoSource      = errors.New("connector: no such data source")
)

// Config describes one data source. Driver names the SQL dialect family
// (any registered name or alias). When Driver is empty the family is taken
// from the DSN scheme.
type Config struct {
	Name           string            `json:"name" yaml:"-"`
	Driver         string            `json:"driver" yaml:"driver"`
	DSN            string            `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	Host           string            `json:"host" yaml:"host"`
	Port           int               `json:"port" yaml:"port"`
	Database       string            `json:"database" yaml:"database"`
	Username       string            `json:"username" yaml:"username"`
	Password       string            `json:"-" yaml:"password"`
	SSLMode        string            `json:"ssl_mode" yaml:"ssl_mode"`
	Params         map[string]string `json:"params" yaml:"params"`
	ConnectTimeout time.Duration     `json:"connect_timeout" yaml:"connect_timeout"`
}

// Validate checks the config can name a dialect and, for host-based
// configs, that the port is usable.
func (c *Config) Validate() error {
	if c.Driver == "" && c.DSN == "" {
		return fmt.Errorf("%w: %s: driver or dsn is required", ErrInvalidConfig, c.label())
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: %s: invalid port %d", ErrInvalidConfig, c.label(), c.Port)
	}
	if _, err := c.Family(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.label(), err)
	}
	return nil
}

// Family resolves the configured dialect family name.
func (c *Config) Family() (string, error) {
	if c.Driver != "" {
		d, err := dialect.Lookup(c.Driver)
		if err != nil {
			return "", err
		}
		return d.Name(), nil
	}
	dsn, err := ParseDSN(c.DSN)
	if err != nil {
		return "", err
	}
	return dsn.Family, nil
}

// Dialect looks the configured family up in the dialect registry.
func (c *Config) Dialect() (dialect.Dialect, error) {
	family, err := c.Family()
	if err != nil {
		return nil, err
	}
	return dialect.Lookup(family)
}

// ConnectionString returns DSN when set, otherwise builds one from the
// host fields with the family as scheme. redacted masks the password.
func (c *Config) ConnectionString(redacted bool) (string, error) {
	if c.DSN != "" {
		if redacted {
			return redact(c.DSN), nil
		}
		return c.DSN, nil
	}
	family, err := c.Family()
	if err != nil {
		return "", err
	}

	password := c.Password
	if redacted && password != "" {
		password = "xxxxx"
	}
	b := NewDSNBuilder(family).
		Auth(c.Username, password).
		Host(c.Host, c.Port).
		Database(c.Database).
		Params(c.Params).
		Param("sslmode", c.SSLMode)
	if c.ConnectTimeout > 0 {
		b.Param("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
	}
	if err := b.Validate(); err != nil {
		return "", err
	}
	return b.Build(), nil
}

func (c *Config) label() string {
	if c.Name != "" {
		return strconv.Quote(c.Name)
	}
	return "data source"
}

// DataSource pins a Config to the dialect it resolved to. The lookup runs
// once, on first use.
type DataSource struct {
	Config Config

	once    sync.Once
	dialect dialect.Dialect
	err     error
}

func NewDataSource(cfg Config) *DataSource {
	return &DataSource{Config: cfg}
}

func (ds *DataSource) Dialect() (dialect.Dialect, error) {
	ds.once.Do(func() {
		ds.dialect, ds.err = ds.Config.Dialect()
	})
	return ds.dialect, ds.err
}

// File is the YAML layout of a config file:
//
//	default: reporting
//	sources:
//	  reporting:
//	    driver: postgres
//	    host: db.internal
//	    port: 5432
//	    database: reports
//	  legacy:
//	    dsn: jdbc:oracle:thin:@ora.internal:1521:orcl
type File struct {
	Default string            `yaml:"default"`
	Sources map[string]Config `yaml:"sources"`

	mu      sync.Mutex
	sources map[string]*DataSource
}

// ParseConfig decodes and validates a config file. Unknown keys are
// rejected.
func ParseConfig(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	f := &File{}
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("%w: no sources defined", ErrInvalidConfig)
	}
	for name, cfg := range f.Sources {
		cfg.Name = name
		f.Sources[name] = cfg
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if f.Default != "" {
		if _, ok := f.Sources[f.Default]; !ok {
			return nil, fmt.Errorf("%w: default %q is not a source", ErrInvalidConfig, f.Default)
		}
	}
	return f, nil
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// Names lists the source names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Sources))
	for name := range f.Sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Source returns the named data source. An empty name selects Default, or
// the only source when there is exactly one. Repeated calls for the same
// name share one DataSource.
func (f *File) Source(name string) (*DataSource, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" && len(f.Sources) == 1 {
		name = f.Names()[0]
	}
	cfg, ok := f.Sources[name]
	if !ok {
		if name == "" {
			return nil, fmt.Errorf("%w: no default among %v", ErrNoSource, f.Names())
		}
		return nil, fmt.Errorf("%w: %q", ErrNoSource, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ds, ok := f.sources[name]; ok {
		return ds, nil
	}
	if f.sources == nil {
		f.sources = make(map[string]*DataSource)
	}
	ds := NewDataSource(cfg)
	f.sources[name] = ds
	return ds, nil
}
