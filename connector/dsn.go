package connector

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/Konsultn-Engineering/flexsql/dialect"
)

var ErrInvalidDSN = errors.New("connector: invalid dsn")

// DSNBuilder provides a fluent interface for building database connection strings
type DSNBuilder struct {
	scheme   string
	username string
	password string
	host     string
	port     int
	database string
	params   map[string]string
}

// NewDSNBuilder creates a new DSN builder
func NewDSNBuilder(scheme string) *DSNBuilder {
	return &DSNBuilder{
		scheme: scheme,
		params: make(map[string]string),
	}
}

// Auth sets username and password
func (b *DSNBuilder) Auth(username, password string) *DSNBuilder {
	b.username = username
	b.password = password
	return b
}

// Host sets the host and port
func (b *DSNBuilder) Host(host string, port int) *DSNBuilder {
	b.host = host
	b.port = port
	return b
}

func (b *DSNBuilder) Database(name string) *DSNBuilder {
	b.database = name
	return b
}

// Param adds a single parameter. Empty values are ignored.
func (b *DSNBuilder) Param(key, value string) *DSNBuilder {
	if value != "" {
		b.params[key] = value
	}
	return b
}

func (b *DSNBuilder) Params(params map[string]string) *DSNBuilder {
	for k, v := range params {
		b.Param(k, v)
	}
	return b
}

func (b *DSNBuilder) Validate() error {
	if b.host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidDSN)
	}
	if b.port < 0 || b.port > 65535 {
		return fmt.Errorf("%w: invalid port %d", ErrInvalidDSN, b.port)
	}
	return nil
}

// Build constructs the final DSN string. Parameters are written in key
// order so equal configs produce equal strings.
func (b *DSNBuilder) Build() string {
	var dsn strings.Builder

	dsn.WriteString(b.scheme)
	dsn.WriteString("://")

	if b.username != "" {
		dsn.WriteString(url.QueryEscape(b.username))
		if b.password != "" {
			dsn.WriteString(":")
			dsn.WriteString(url.QueryEscape(b.password))
		}
		dsn.WriteString("@")
	}

	dsn.WriteString(b.host)
	if b.port > 0 {
		dsn.WriteString(":")
		dsn.WriteString(strconv.Itoa(b.port))
	}

	if b.database != "" {
		dsn.WriteString("/")
		dsn.WriteString(url.PathEscape(b.database))
	}

	for i, key := range slices.Sorted(maps.Keys(b.params)) {
		if i == 0 {
			dsn.WriteString("?")
		} else {
			dsn.WriteString("&")
		}
		dsn.WriteString(url.QueryEscape(key))
		dsn.WriteString("=")
		dsn.WriteString(url.QueryEscape(b.params[key]))
	}

	return dsn.String()
}

// DSN is a parsed connection string.
type DSN struct {
	Scheme   string
	Family   string
	Username string
	Password string
	Host     string
	Port     int
	Database string
	Params   map[string]string
}

// Schemes that are not themselves dialect names or aliases.
var schemeFamilies = map[string]string{
	"jtds":          dialect.SQLServer,
	"postgis":       dialect.PostgreSQL,
	"cockroachdb":   dialect.PostgreSQL,
	"sap":           dialect.SAPHana,
	"informix-sqli": dialect.Informix,
	"firebirdsql":   dialect.Firebird,
	"hive2":         dialect.Impala,
}

// ParseDSN parses a URL-style connection string and infers the dialect
// family from its scheme. A leading "jdbc:" is ignored, so both
// postgres://db/app and jdbc:postgresql://db/app resolve to postgresql.
func ParseDSN(raw string) (*DSN, error) {
	_, s := splitJDBC(strings.TrimSpace(raw))

	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDSN, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: missing scheme in %q", ErrInvalidDSN, redact(raw))
	}

	family, err := familyForScheme(u.Scheme)
	if err != nil {
		return nil, err
	}

	dsn := &DSN{
		Scheme:   u.Scheme,
		Family:   family,
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
		Params:   make(map[string]string),
	}
	if u.User != nil {
		dsn.Username = u.User.Username()
		dsn.Password, _ = u.User.Password()
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid port %q", ErrInvalidDSN, p)
		}
		dsn.Port = port
	}
	for k, v := range u.Query() {
		if len(v) > 0 {
			dsn.Params[k] = v[len(v)-1]
		}
	}
	return dsn, nil
}

func familyForScheme(scheme string) (string, error) {
	scheme = strings.ToLower(scheme)
	if f, ok := schemeFamilies[scheme]; ok {
		return f, nil
	}
	d, err := dialect.Lookup(scheme)
	if err != nil {
		return "", fmt.Errorf("%w: no dialect for scheme %q: %w", ErrInvalidDSN, scheme, err)
	}
	return d.Name(), nil
}

// String rebuilds the connection string, with parameters in key order.
func (d *DSN) String() string {
	return NewDSNBuilder(d.Scheme).
		Auth(d.Username, d.Password).
		Host(d.Host, d.Port).
		Database(d.Database).
		Params(d.Params).
		Build()
}

// redact hides the password of a URL-shaped string, if any. A leading
// "jdbc:" is kept. Strings url.Parse rejects have their userinfo masked
// by hand.
func redact(raw string) string {
	prefix, s := splitJDBC(raw)
	u, err := url.Parse(s)
	if err != nil {
		return prefix + maskUserinfo(s)
	}
	if u.User == nil {
		return raw
	}
	return prefix + u.Redacted()
}

func splitJDBC(raw string) (prefix, rest string) {
	if len(raw) >= 5 && strings.EqualFold(raw[:5], "jdbc:") {
		return raw[:5], raw[5:]
	}
	return "", raw
}

// maskUserinfo replaces the password between "scheme://user:" and the last
// '@' of the authority with xxxxx.
func maskUserinfo(s string) string {
	start := strings.Index(s, "://")
	if start < 0 {
		return s
	}
	start += 3
	end := len(s)
	if i := strings.IndexAny(s[start:], "/?#"); i >= 0 {
		end = start + i
	}
	at := strings.LastIndex(s[start:end], "@")
	if at < 0 {
		return s
	}
	at += start
	colon := strings.Index(s[start:at], ":")
	if colon < 0 {
		return s
	}
	colon += start
	return s[:colon+1] + "xxxxx" + s[at:]
}
