package repository

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/certtracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{StorageDriver: config.StorageDriverMemory}}

	set, err := Open(context.Background(), cfg, true)
	require.NoError(t, err)
	defer set.Close()

	assert.Nil(t, set.DB)
	assert.NotNil(t, set.Users)
	assert.NotNil(t, set.Roster)
	assert.NotNil(t, set.Transactor)

	roster, err := set.Roster.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{StorageDriver: "sqlite"}}
	_, err := Open(context.Background(), cfg, false)
	assert.Error(t, err)
}
