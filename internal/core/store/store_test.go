package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doorstephq/doorstep/internal/config"
)

func TestBuildLibsqlDSN_MemoryPassthrough(t *testing.T) {
	dsn, err := buildLibsqlDSN(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, ":memory:", dsn)
}

func TestBuildLibsqlDSN_PlainPathGetsFileScheme(t *testing.T) {
	dir := t.TempDir()
	dsn, err := buildLibsqlDSN(config.StoreConfig{Path: dir + "/doorstep.db"})
	require.NoError(t, err)
	assert.Equal(t, "file:"+dir+"/doorstep.db", dsn)
}

func TestBuildLibsqlDSN_URLWithAuthToken(t *testing.T) {
	dsn, err := buildLibsqlDSN(config.StoreConfig{
		URL:       "libsql://doorstep-prod.turso.io",
		AuthToken: "secret-token",
	})
	require.NoError(t, err)
	assert.Contains(t, dsn, "authToken=secret-token")
}

func TestBuildLibsqlDSN_ExistingAuthTokenPreserved(t *testing.T) {
	dsn, err := buildLibsqlDSN(config.StoreConfig{
		URL:       "libsql://doorstep-prod.turso.io?authToken=original",
		AuthToken: "other",
	})
	require.NoError(t, err)
	assert.Contains(t, dsn, "authToken=original")
	assert.NotContains(t, dsn, "other")
}

func TestBuildLibsqlDSN_MissingPath(t *testing.T) {
	_, err := buildLibsqlDSN(config.StoreConfig{})
	assert.Error(t, err)
}
