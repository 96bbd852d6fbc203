package database

import (
	"testing"

	"mindclass_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{driver: "mysql", name: "mysql"},
		{driver: "postgres", name: "postgres"},
		{driver: "memory", wantErr: true},
		{driver: "sqlite", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := Dialector(&config.DatabaseConfig{
				Driver: tt.driver, Host: "localhost", Port: 5432,
				User: "u", Password: "p", DBName: "mindclass", Charset: "utf8mb4", SSLMode: "disable",
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}
}
