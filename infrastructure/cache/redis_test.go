package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	tests := []struct {
		name         string
		redisURL     string
		expectedAddr string
		expectedDB   int
		wantErr      bool
	}{
		{
			name:         "URL redis com banco",
			redisURL:     "redis://localhost:6379/2",
			expectedAddr: "localhost:6379",
			expectedDB:   2,
		},
		{
			name:         "Host e porta",
			redisURL:     "cache.internal:6380",
			expectedAddr: "cache.internal:6380",
		},
		{
			name:     "URL redis inválida",
			redisURL: "redis://localhost:6379/banco",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := Connect(context.Background(), tt.redisURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer client.Close()

			assert.Equal(t, tt.expectedAddr, client.Options().Addr)
			assert.Equal(t, tt.expectedDB, client.Options().DB)
		})
	}
}
