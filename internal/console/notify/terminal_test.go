package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminalNotifierTags(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf)

	n.Info("a")
	n.Success("b")
	n.Warning("c")
	n.Error("d")

	out := buf.String()
	require.Contains(t, out, "[info] a")
	require.Contains(t, out, "[ok] b")
	require.Contains(t, out, "[warn] c")
	require.Contains(t, out, "[error] d")
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Error("boom")
	r.Info("hello")

	require.Len(t, r.Notifications(), 2)
	require.Equal(t, []string{"boom"}, r.ByVariant(VariantError))
	require.Empty(t, r.ByVariant(VariantSuccess))
}
