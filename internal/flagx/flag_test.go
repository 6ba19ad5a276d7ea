package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "http://device.local", "-x", "junk"},
			allowed: []string{"-d"},
			want:    []string{"-d", "http://device.local"},
		},
		{
			name:    "attached value",
			args:    []string{"--config=conf.json", "-v"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value followed by another flag",
			args:    []string{"-d", "-v"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1", "-b=2"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"sprinklerctl", "-c", "console.json", "-d", "http://device.local"}
	require.Equal(t, "console.json", ConfigFileFlags())

	os.Args = []string{"sprinklerctl", "-config=other.json"}
	require.Equal(t, "other.json", ConfigFileFlags())

	os.Args = []string{"sprinklerctl"}
	require.Equal(t, "", ConfigFileFlags())
}
