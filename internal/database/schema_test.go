package database

import (
	"testing"

	"trailfund/internal/config"
	"trailfund/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		env         string
		destructive bool
		wantSQL     bool
		wantAuto    bool
		wantErr     bool
	}{
		{name: "hybrid development", mode: "hybrid", env: "development", wantSQL: true, wantAuto: true},
		{name: "hybrid production", mode: "hybrid", env: "production", wantSQL: true, wantAuto: false},
		{name: "hybrid staging", mode: "hybrid", env: "staging", wantSQL: true, wantAuto: false},
		{name: "default is hybrid", mode: "", env: "development", wantSQL: true, wantAuto: true},
		{name: "sql only", mode: "sql", env: "production", wantSQL: true, wantAuto: false},
		{name: "auto in development", mode: "auto", env: "development", wantSQL: false, wantAuto: true},
		{name: "auto refused in production", mode: "auto", env: "production", wantErr: true},
		{name: "auto allowed in production with override", mode: "auto", env: "production", destructive: true, wantSQL: false, wantAuto: true},
		{name: "unknown mode", mode: "yolo", env: "development", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				DBSchemaMode:                  tt.mode,
				Env:                           tt.env,
				DBAutoMigrateAllowDestructive: tt.destructive,
			}
			runSQL, runAuto, err := schemaPolicy(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}

func TestRegisteredMigrations(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)

	last := 0
	for _, m := range ms {
		assert.Greater(t, m.Version, last, "migrations must be strictly ordered")
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
		last = m.Version
	}

	init := GetMigrationByVersion(1)
	require.NotNil(t, init)
	assert.Equal(t, "init", init.Name)

	pair := GetMigrationByVersion(2)
	require.NotNil(t, pair)
	assert.Equal(t, "friendship_pair", pair.Name)
	assert.Contains(t, pair.UpScript, "LEAST(requester_id, addressee_id)")
}

func TestPersistentModelsCoverDomain(t *testing.T) {
	wantFulfillment := false
	wantLoginLog := false
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.RequestFulfillment:
			wantFulfillment = true
		case *models.LoginLog:
			wantLoginLog = true
		}
	}
	require.True(t, wantFulfillment, "PersistentModels should include RequestFulfillment")
	require.True(t, wantLoginLog, "PersistentModels should include LoginLog")
}
