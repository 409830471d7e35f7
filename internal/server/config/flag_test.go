package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
			"-t", "30", "-w", "500", "-o", "https://example.com", "-n",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:      "127.0.0.1:9090",
				DatabaseDSN:           "db",
				SecretKey:             "secret",
				TokenValidityDuration: 30 * time.Minute,
				DemoWait:              500 * time.Millisecond,
				EchoNoteCreates:       true,
				CORSAllowedOrigin:     "https://example.com",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			parseFlags(config)

			assert.Equal(t, tt.expected.EndpointAddrHTTP, config.EndpointAddrHTTP)
			assert.Equal(t, tt.expected.DatabaseDSN, config.DatabaseDSN)
			assert.Equal(t, tt.expected.SecretKey, config.SecretKey)
			assert.Equal(t, tt.expected.TokenValidityDuration, config.TokenValidityDuration)
			assert.Equal(t, tt.expected.DemoWait, config.DemoWait)
			assert.Equal(t, tt.expected.EchoNoteCreates, config.EchoNoteCreates)
			assert.Equal(t, tt.expected.CORSAllowedOrigin, config.CORSAllowedOrigin)
		})
	}
}
