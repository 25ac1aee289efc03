package cli

import (
	"errors"

	"github.com/julianstephens/alarmnote/internal/config"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/keyring"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/storage/postgres"
	"github.com/julianstephens/alarmnote/internal/storage/sqlite"
)

// ErrEmbeddedCredentials is returned for PostgreSQL URLs that carry a password
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed; " +
	"store the connection string with '" + constants.AppName + " keyring set', export " + config.EnvDBConnection +
	", or use a .pgpass file")

// OpenStore returns the provider for database, which is either a SQLite file
// path or a PostgreSQL connection string. When database is the default path
// and the OS keyring holds a connection string, the keyring wins.
func OpenStore(database string) (storage.Provider, error) {
	if database == constants.DefaultConfigPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from OS keyring")
			return postgres.New(connStr), nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Skipping OS keyring", "error", err)
		}
	}

	if postgres.IsConnString(database) {
		if err := postgres.ValidateConnString(database); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, ErrEmbeddedCredentials
			}
			return nil, err
		}
		return postgres.New(database), nil
	}

	path, err := config.ExpandHome(database)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}
