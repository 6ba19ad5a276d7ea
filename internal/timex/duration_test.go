package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	var v struct {
		Interval Duration `json:"interval"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"interval":"500ms"}`), &v))
	require.Equal(t, 500*time.Millisecond, v.Interval.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"interval":1000000000}`), &v))
	require.Equal(t, time.Second, v.Interval.Duration)

	require.Error(t, json.Unmarshal([]byte(`{"interval":"bogus"}`), &v))
	require.Error(t, json.Unmarshal([]byte(`{"interval":true}`), &v))
}

func TestDurationMarshal(t *testing.T) {
	b, err := json.Marshal(Duration{2 * time.Second})
	require.NoError(t, err)
	require.JSONEq(t, `"2s"`, string(b))
}
