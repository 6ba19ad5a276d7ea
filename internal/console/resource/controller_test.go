package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
)

type testSettings struct {
	Name    string  `json:"name"`
	Port    float64 `json:"port"`
	Enabled bool    `json:"enabled"`
}

// scriptedDoer returns canned responses in order and records request bodies.
type scriptedDoer struct {
	responses []*http.Response
	errs      []error
	bodies    []string
	calls     int
}

func (d *scriptedDoer) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	i := d.calls
	d.calls++
	if body != nil {
		data, _ := io.ReadAll(body)
		d.bodies = append(d.bodies, string(data))
	} else {
		d.bodies = append(d.bodies, "")
	}
	if i < len(d.errs) && d.errs[i] != nil {
		return nil, d.errs[i]
	}
	return d.responses[i], nil
}

func jsonResponse(status int, v any) *http.Response {
	data, _ := json.Marshal(v)
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(data))}
}

func emptyResponse(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(nil))}
}

func TestControllerLoad(t *testing.T) {
	rec := notify.NewRecorder()
	doer := &scriptedDoer{responses: []*http.Response{
		jsonResponse(200, testSettings{Name: "dev", Port: 8080, Enabled: true}),
	}}
	ctrl := NewController[testSettings]("/rest/testSettings", doer, rec)

	ctrl.Load(context.Background())

	assert.False(t, ctrl.Loading())
	assert.Empty(t, ctrl.ErrorMessage())
	data, ok := ctrl.Data()
	require.True(t, ok)
	assert.Equal(t, "dev", data.Name)
	assert.Empty(t, rec.Notifications())
}

func TestControllerLoad_Non200(t *testing.T) {
	rec := notify.NewRecorder()
	doer := &scriptedDoer{responses: []*http.Response{emptyResponse(500)}}
	ctrl := NewController[testSettings]("/rest/testSettings", doer, rec)

	ctrl.Load(context.Background())

	assert.False(t, ctrl.Loading())
	assert.Equal(t, "Invalid status code: 500", ctrl.ErrorMessage())
	_, ok := ctrl.Data()
	assert.False(t, ok)

	errs := rec.ByVariant(notify.VariantError)
	require.Len(t, errs, 1)
	assert.Equal(t, "Problem fetching: Invalid status code: 500", errs[0])
}

func TestControllerLoad_UnauthorizedIsSilent(t *testing.T) {
	rec := notify.NewRecorder()
	doer := &scriptedDoer{errs: []error{api.ErrUnauthorized}, responses: []*http.Response{nil}}
	ctrl := NewController[testSettings]("/rest/testSettings", doer, rec)

	ctrl.Load(context.Background())

	assert.False(t, ctrl.Loading())
	assert.Empty(t, ctrl.ErrorMessage())
	assert.Empty(t, rec.Notifications(), "the 401 path already notified")
}

func TestControllerSave(t *testing.T) {
	rec := notify.NewRecorder()
	doer := &scriptedDoer{responses: []*http.Response{
		jsonResponse(200, testSettings{Name: "dev", Port: 8080}),
		// The device normalizes what it persists; its representation wins.
		jsonResponse(200, testSettings{Name: "DEV", Port: 8081}),
	}}
	ctrl := NewController[testSettings]("/rest/testSettings", doer, rec)

	ctrl.Load(context.Background())
	require.NoError(t, ctrl.ApplyChange("port", Input{Kind: InputNumber, Value: "8081"}))
	ctrl.Save(context.Background())

	data, ok := ctrl.Data()
	require.True(t, ok)
	assert.Equal(t, "DEV", data.Name, "saved data is the device's returned representation")
	assert.Equal(t, float64(8081), data.Port)

	var sent testSettings
	require.NoError(t, json.Unmarshal([]byte(doer.bodies[1]), &sent))
	assert.Equal(t, float64(8081), sent.Port, "the whole edited object is submitted")

	assert.Contains(t, rec.ByVariant(notify.VariantSuccess), "Update successful.")
}

func TestControllerSave_NoDataIsNoop(t *testing.T) {
	rec := notify.NewRecorder()
	doer := &scriptedDoer{}
	ctrl := NewController[testSettings]("/rest/testSettings", doer, rec)

	ctrl.Save(context.Background())

	assert.Zero(t, doer.calls)
	assert.Empty(t, rec.Notifications())
}

func TestControllerSave_FailureDiscardsEdits(t *testing.T) {
	rec := notify.NewRecorder()
	doer := &scriptedDoer{responses: []*http.Response{
		jsonResponse(200, testSettings{Name: "dev"}),
		emptyResponse(503),
	}}
	ctrl := NewController[testSettings]("/rest/testSettings", doer, rec)

	ctrl.Load(context.Background())
	require.NoError(t, ctrl.ApplyChange("name", Input{Kind: InputText, Value: "edited"}))
	ctrl.Save(context.Background())

	_, ok := ctrl.Data()
	assert.False(t, ok, "a failed save does not keep the attempted edits")
	assert.Equal(t, "Invalid status code: 503", ctrl.ErrorMessage())
	assert.False(t, ctrl.Loading())

	errs := rec.ByVariant(notify.VariantError)
	require.Len(t, errs, 1)
	assert.Equal(t, "Problem updating: Invalid status code: 503", errs[0])
}

func TestControllerSet(t *testing.T) {
	ctrl := NewController[testSettings]("/rest/testSettings", &scriptedDoer{}, notify.NewRecorder())

	ran := false
	ctrl.Set(testSettings{Name: "local"}, func() { ran = true })

	assert.True(t, ran)
	data, ok := ctrl.Data()
	require.True(t, ok)
	assert.Equal(t, "local", data.Name)
}

func TestApplyChange(t *testing.T) {
	newLoaded := func(t *testing.T) *Controller[testSettings] {
		t.Helper()
		ctrl := NewController[testSettings]("/rest/testSettings", &scriptedDoer{}, notify.NewRecorder())
		ctrl.Set(testSettings{Name: "dev", Port: 8080, Enabled: false}, nil)
		return ctrl
	}

	t.Run("text", func(t *testing.T) {
		ctrl := newLoaded(t)
		require.NoError(t, ctrl.ApplyChange("name", Input{Kind: InputText, Value: "other"}))
		data, _ := ctrl.Data()
		assert.Equal(t, "other", data.Name)
		assert.Equal(t, float64(8080), data.Port, "untouched fields are preserved")
	})

	t.Run("number", func(t *testing.T) {
		ctrl := newLoaded(t)
		require.NoError(t, ctrl.ApplyChange("port", Input{Kind: InputNumber, Value: "9090"}))
		data, _ := ctrl.Data()
		assert.Equal(t, float64(9090), data.Port)
	})

	t.Run("checkbox", func(t *testing.T) {
		ctrl := newLoaded(t)
		require.NoError(t, ctrl.ApplyChange("enabled", Input{Kind: InputCheckbox, Checked: true}))
		data, _ := ctrl.Data()
		assert.True(t, data.Enabled)
	})

	t.Run("unknown field", func(t *testing.T) {
		ctrl := newLoaded(t)
		err := ctrl.ApplyChange("missing", Input{Kind: InputText, Value: "x"})
		assert.Error(t, err)
	})

	t.Run("bad number", func(t *testing.T) {
		ctrl := newLoaded(t)
		err := ctrl.ApplyChange("port", Input{Kind: InputNumber, Value: "ten"})
		assert.Error(t, err)
	})

	t.Run("no data loaded", func(t *testing.T) {
		ctrl := NewController[testSettings]("/rest/testSettings", &scriptedDoer{}, notify.NewRecorder())
		err := ctrl.ApplyChange("name", Input{Kind: InputText, Value: "x"})
		assert.Error(t, err)
	})
}

func TestExtractValue(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    any
		wantErr bool
	}{
		{"text", Input{Kind: InputText, Value: "abc"}, "abc", false},
		{"number", Input{Kind: InputNumber, Value: "42.5"}, 42.5, false},
		{"checkbox checked", Input{Kind: InputCheckbox, Checked: true}, true, false},
		{"checkbox unchecked", Input{Kind: InputCheckbox}, false, false},
		{"bad number", Input{Kind: InputNumber, Value: "abc"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractValue(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
