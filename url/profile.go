package url

import (
	"braces.dev/errtrace"

	"github.com/netval/netval/internal/errorutil"
	"github.com/netval/netval/internal/util"
)

// Kind selects a predefined constraint profile for a family of URL schemes,
// mostly database and message-broker DSN dialects.
type Kind uint8

const (
	// KindAny accepts any well-formed absolute URL.
	KindAny Kind = iota
	// KindAnyHTTP accepts http and https URLs with no length ceiling
	// beyond the default.
	KindAnyHTTP
	// KindHTTP accepts http and https URLs capped at 2083 characters.
	KindHTTP
	// KindAnyWebsocket accepts ws and wss URLs.
	KindAnyWebsocket
	// KindWebsocket accepts ws and wss URLs capped at 2083 characters.
	KindWebsocket
	// KindFTP accepts ftp URLs.
	KindFTP
	// KindFile accepts file URLs; a host is optional.
	KindFile
	// KindPostgres accepts PostgreSQL DSNs, including SQLAlchemy driver
	// variants, with multi-host support.
	KindPostgres
	// KindCockroachDB accepts CockroachDB DSNs.
	KindCockroachDB
	// KindMySQL accepts MySQL DSNs, including connector variants.
	KindMySQL
	// KindMariaDB accepts MariaDB DSNs.
	KindMariaDB
	// KindClickHouse accepts ClickHouse DSNs.
	KindClickHouse
	// KindSnowflake accepts Snowflake DSNs.
	KindSnowflake
	// KindMongoDB accepts MongoDB seed-list DSNs with multi-host support.
	KindMongoDB
	// KindRedis accepts Redis DSNs, defaulting to localhost:6379/0.
	KindRedis
	// KindAMQP accepts AMQP broker URLs; a host is optional.
	KindAMQP
	// KindKafka accepts Kafka bootstrap URLs, defaulting to localhost:9092.
	KindKafka
	// KindNATS accepts NATS server URLs with multi-host support.
	KindNATS
)

type profileEntry struct {
	name        string
	constraints Constraints
	multiHost   bool
}

var profiles = [...]profileEntry{
	KindAny: {name: "any"},
	KindAnyHTTP: {
		name:        "any-http",
		constraints: Constraints{AllowedSchemes: []string{"http", "https"}},
	},
	KindHTTP: {
		name: "http",
		constraints: Constraints{
			MaxLength:      ptr(2083),
			AllowedSchemes: []string{"http", "https"},
		},
	},
	KindAnyWebsocket: {
		name:        "any-websocket",
		constraints: Constraints{AllowedSchemes: []string{"ws", "wss"}},
	},
	KindWebsocket: {
		name: "websocket",
		constraints: Constraints{
			MaxLength:      ptr(2083),
			AllowedSchemes: []string{"ws", "wss"},
		},
	},
	KindFTP: {
		name:        "ftp",
		constraints: Constraints{AllowedSchemes: []string{"ftp"}},
	},
	KindFile: {
		name:        "file",
		constraints: Constraints{AllowedSchemes: []string{"file"}},
	},
	KindPostgres: {
		name:      "postgres",
		multiHost: true,
		constraints: Constraints{
			AllowedSchemes: []string{
				"postgres",
				"postgresql",
				"postgresql+asyncpg",
				"postgresql+pg8000",
				"postgresql+psycopg",
				"postgresql+psycopg2",
				"postgresql+psycopg2cffi",
				"postgresql+py-postgresql",
				"postgresql+pygresql",
			},
			HostRequired: ptr(true),
			DefaultPort:  ptr(uint16(5432)),
		},
	},
	KindCockroachDB: {
		name: "cockroachdb",
		constraints: Constraints{
			AllowedSchemes: []string{
				"cockroachdb",
				"cockroachdb+psycopg2",
				"cockroachdb+asyncpg",
			},
			HostRequired: ptr(true),
			DefaultPort:  ptr(uint16(26257)),
		},
	},
	KindMySQL: {
		name: "mysql",
		constraints: Constraints{
			AllowedSchemes: []string{
				"mysql",
				"mysql+mysqlconnector",
				"mysql+aiomysql",
				"mysql+asyncmy",
				"mysql+mysqldb",
				"mysql+pymysql",
				"mysql+cymysql",
				"mysql+pyodbc",
			},
			DefaultPort: ptr(uint16(3306)),
		},
	},
	KindMariaDB: {
		name: "mariadb",
		constraints: Constraints{
			AllowedSchemes: []string{
				"mariadb",
				"mariadb+mariadbconnector",
				"mariadb+pymysql",
			},
			DefaultPort: ptr(uint16(3306)),
		},
	},
	KindClickHouse: {
		name: "clickhouse",
		constraints: Constraints{
			AllowedSchemes: []string{
				"clickhouse",
				"clickhouses",
				"clickhousedb",
				"clickhouse+native",
				"clickhouse+asynch",
				"clickhouse+http",
			},
			DefaultHost: ptr("localhost"),
			DefaultPort: ptr(uint16(9000)),
		},
	},
	KindSnowflake: {
		name: "snowflake",
		constraints: Constraints{
			AllowedSchemes: []string{"snowflake"},
			HostRequired:   ptr(true),
		},
	},
	KindMongoDB: {
		name:      "mongodb",
		multiHost: true,
		constraints: Constraints{
			AllowedSchemes: []string{"mongodb"},
			DefaultPort:    ptr(uint16(27017)),
		},
	},
	KindRedis: {
		name: "redis",
		constraints: Constraints{
			AllowedSchemes: []string{"redis", "rediss"},
			DefaultHost:    ptr("localhost"),
			DefaultPort:    ptr(uint16(6379)),
			DefaultPath:    ptr("/0"),
		},
	},
	KindAMQP: {
		name:        "amqp",
		constraints: Constraints{AllowedSchemes: []string{"amqp", "amqps"}},
	},
	KindKafka: {
		name: "kafka",
		constraints: Constraints{
			AllowedSchemes: []string{"kafka"},
			DefaultHost:    ptr("localhost"),
			DefaultPort:    ptr(uint16(9092)),
		},
	},
	KindNATS: {
		name:      "nats",
		multiHost: true,
		constraints: Constraints{
			AllowedSchemes: []string{"nats", "tls", "ws", "wss"},
			DefaultHost:    ptr("localhost"),
			DefaultPort:    ptr(uint16(4222)),
		},
	},
}

func ptr[T any](v T) *T { return &v }

// IsValid checks whether the kind names a registered profile.
func (k Kind) IsValid() bool { return int(k) < len(profiles) }

// String returns the profile name.
func (k Kind) String() string {
	if !k.IsValid() {
		return "unknown"
	}
	return profiles[k].name
}

// Constraints returns a copy of the profile's constraint set.
func (k Kind) Constraints() Constraints {
	if !k.IsValid() {
		return Constraints{}
	}
	cs := profiles[k].constraints
	cs.AllowedSchemes = append([]string(nil), cs.AllowedSchemes...)
	return cs
}

// MultiHost checks whether the profile parses comma-separated authority
// lists.
func (k Kind) MultiHost() bool { return k.IsValid() && profiles[k].multiHost }

// Parse parses and validates src under the profile, dispatching to
// [ParseMultiHost] for multi-host profiles and [Parse] otherwise.
func (k Kind) Parse(src string) (*URL, error) {
	if !k.IsValid() {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown URL kind %d", uint8(k)))
	}
	if profiles[k].multiHost {
		return errtrace.Wrap2(ParseMultiHost(src, profiles[k].constraints))
	}
	return errtrace.Wrap2(Parse(src, profiles[k].constraints))
}

// ParseKind resolves a profile by name.
func ParseKind(name string) (Kind, error) {
	name = util.LCase(name)
	for k := range profiles {
		if profiles[k].name == name {
			return Kind(k), nil
		}
	}
	return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown URL kind %q", name))
}
