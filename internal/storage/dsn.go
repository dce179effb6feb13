package storage

import (
	"net/url"
	"strings"
)

// IsPostgresDSN reports whether config names a PostgreSQL database rather
// than a SQLite file path.
func IsPostgresDSN(config string) bool {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		return true
	}
	return strings.Contains(config, "host=") && strings.Contains(config, "dbname=")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password, in either URL or key=value form.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if _, ok := u.User.Password(); ok {
			return true
		}
		return u.Query().Get("password") != ""
	}

	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}
