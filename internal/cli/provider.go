package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/soberly/internal/config"
	"github.com/julianstephens/soberly/internal/constants"
	"github.com/julianstephens/soberly/internal/keyring"
	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/storage/jsonfile"
	"github.com/julianstephens/soberly/internal/storage/postgres"
	"github.com/julianstephens/soberly/internal/storage/sqlite"
)

// KeyringDB is the db value that selects the connection string stored in
// the OS keyring.
const KeyringDB = "keyring"

// Backend names a storage implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendJSON     Backend = "json"
)

var getKeyringConnection = keyring.GetConnectionString

// OpenProvider picks a storage backend from the configuration. PostgreSQL
// connection strings given as db must not carry a password; passwords come
// from SOBERLY_DB_CONNECTION or the OS keyring.
func OpenProvider(cfg config.Config) (storage.Provider, Backend, error) {
	if cfg.DBConnection != "" {
		return postgres.New(cfg.DBConnection), BackendPostgres, nil
	}

	db := strings.TrimSpace(cfg.DB)
	switch {
	case db == KeyringDB:
		connStr, err := getKeyringConnection()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, "", errors.New("no connection string in keyring, run 'soberly keyring set' first")
			}
			return nil, "", err
		}
		return postgres.New(connStr), BackendPostgres, nil

	case isPostgres(db):
		if err := postgres.ValidateConnString(db); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("%w; store it with 'soberly keyring set' or export %s instead",
					err, constants.EnvDBConnection)
			}
			return nil, "", err
		}
		return postgres.New(db), BackendPostgres, nil
	}

	path, err := config.ExpandHome(db)
	if err != nil {
		return nil, "", err
	}
	if storage.IsJSONPath(path) {
		return jsonfile.NewStore(path), BackendJSON, nil
	}
	return sqlite.NewStore(path), BackendSQLite, nil
}

func isPostgres(db string) bool {
	return storage.IsPostgresURL(db) || strings.Contains(db, "host=") || strings.Contains(db, "dbname=")
}

// MaskPassword hides the password in a PostgreSQL URL or DSN for display.
func MaskPassword(connStr string) string {
	if storage.IsPostgresURL(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			rest := connStr[idx+3:]
			if at := strings.LastIndex(rest, "@"); at != -1 {
				userInfo := rest[:at]
				if colon := strings.Index(userInfo, ":"); colon != -1 {
					return connStr[:idx+3] + userInfo[:colon] + ":****" + rest[at:]
				}
			}
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
