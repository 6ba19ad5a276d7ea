package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/models"
	"github.com/sprinklerworks/sprinklerctl/internal/console/resource"
	"github.com/sprinklerworks/sprinklerctl/internal/console/session"
)

// showResource loads one resource and prints its JSON representation.
// Failures were already reported by the controller, so "no data" just ends
// the view.
func showResource[T any](ctx context.Context, a *App, endpoint string) error {
	ctrl := resource.NewController[T](endpoint, a.fetch, a.notifier)
	ctrl.Load(ctx)

	data, ok := ctrl.Data()
	if !ok {
		return nil
	}
	return printJSON(a.out, data)
}

// editResource loads one resource, collects name=value edits from the user
// and, if any were accepted, saves the whole object back.
func editResource[T any](ctx context.Context, a *App, endpoint string) error {
	ctrl := resource.NewController[T](endpoint, a.fetch, a.notifier)
	ctrl.Load(ctx)

	data, ok := ctrl.Data()
	if !ok {
		return nil
	}
	if err := printJSON(a.out, data); err != nil {
		return err
	}

	edits, err := GetEdits(a.reader, a.out)
	if err != nil {
		return err
	}
	applied := 0
	for _, edit := range edits {
		in, err := inferInput(ctrl, edit[0], edit[1])
		if err != nil {
			fmt.Fprintf(a.out, "ignored %s: %v\n", edit[0], err)
			continue
		}
		if err := ctrl.ApplyChange(edit[0], in); err != nil {
			fmt.Fprintf(a.out, "ignored %s: %v\n", edit[0], err)
			continue
		}
		applied++
	}
	if applied == 0 {
		fmt.Fprintln(a.out, "Nothing to save.")
		return nil
	}

	ctrl.Save(ctx)
	if data, ok := ctrl.Data(); ok {
		return printJSON(a.out, data)
	}
	return nil
}

// inferInput types a raw edit from the JSON kind of the field's current
// value: bool fields become checkboxes, numbers become number inputs,
// everything else is text. The field existence check itself is left to
// ApplyChange.
func inferInput[T any](ctrl *resource.Controller[T], field, value string) (resource.Input, error) {
	data, ok := ctrl.Data()
	if !ok {
		return resource.Input{}, fmt.Errorf("no data loaded")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return resource.Input{}, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return resource.Input{}, err
	}

	switch fields[field].(type) {
	case bool:
		return resource.Input{Kind: resource.InputCheckbox, Checked: value == "true" || value == "y" || value == "yes"}, nil
	case float64:
		return resource.Input{Kind: resource.InputNumber, Value: value}, nil
	default:
		return resource.Input{Kind: resource.InputText, Value: value}, nil
	}
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func (a *App) wifiSettingsView(ctx context.Context, _ session.Principal) error {
	return editResource[models.WiFiSettings](ctx, a, api.WiFiSettingsEndpoint)
}

func (a *App) wifiStatusView(ctx context.Context, _ session.Principal) error {
	return showResource[models.WiFiStatus](ctx, a, api.WiFiStatusEndpoint)
}

func (a *App) apSettingsView(ctx context.Context, _ session.Principal) error {
	return editResource[models.APSettings](ctx, a, api.APSettingsEndpoint)
}

func (a *App) apStatusView(ctx context.Context, _ session.Principal) error {
	return showResource[models.APStatus](ctx, a, api.APStatusEndpoint)
}

func (a *App) ntpSettingsView(ctx context.Context, _ session.Principal) error {
	if !a.features.NTP {
		fmt.Fprintln(a.out, "Time synchronization is not available on this device.")
		return nil
	}
	return editResource[models.NTPSettings](ctx, a, api.NTPSettingsEndpoint)
}

func (a *App) ntpStatusView(ctx context.Context, _ session.Principal) error {
	if !a.features.NTP {
		fmt.Fprintln(a.out, "Time synchronization is not available on this device.")
		return nil
	}
	return showResource[models.NTPStatus](ctx, a, api.NTPStatusEndpoint)
}

// securityView manages device accounts. It is admin-only; a plain user is
// told so instead of being bounced around.
func (a *App) securityView(ctx context.Context, p session.Principal) error {
	if !a.features.Security {
		fmt.Fprintln(a.out, "Security is not enabled on this device.")
		return nil
	}
	if !p.Admin {
		a.notifier.Warning("Administrator privileges are required.")
		return nil
	}
	return editResource[models.SecuritySettings](ctx, a, api.SecuritySettingsEndpoint)
}

func (a *App) otaSettingsView(ctx context.Context, _ session.Principal) error {
	if !a.features.OTA {
		fmt.Fprintln(a.out, "OTA updates are not available on this device.")
		return nil
	}
	return editResource[models.OTASettings](ctx, a, api.OTASettingsEndpoint)
}

func (a *App) systemStatusView(ctx context.Context, _ session.Principal) error {
	return showResource[models.SystemStatus](ctx, a, api.SystemStatusEndpoint)
}

func (a *App) scheduleView(ctx context.Context, _ session.Principal) error {
	if !a.features.Project {
		fmt.Fprintln(a.out, "No sprinkler controller on this device.")
		return nil
	}
	return editResource[models.Schedule](ctx, a, api.ScheduleEndpoint)
}

func (a *App) sprinklerStatusView(ctx context.Context, _ session.Principal) error {
	if !a.features.Project {
		fmt.Fprintln(a.out, "No sprinkler controller on this device.")
		return nil
	}

	ctrl := resource.NewController[models.SprinklerStatus](api.SprinklerStatusEndpoint, a.fetch, a.notifier)
	ctrl.Load(ctx)
	status, ok := ctrl.Data()
	if !ok {
		return nil
	}

	fmt.Fprintf(a.out, "State: %s\n", status.State)
	if status.ActiveStation != "" {
		fmt.Fprintf(a.out, "Active station: %s (pin %d)\n", status.ActiveStation, status.ActivePin)
	}
	fmt.Fprintf(a.out, "Entered state at: %d\n", status.EnteredStateTime)
	fmt.Fprintf(a.out, "Leaving state at: %d\n", status.LeavingStateTime)
	return nil
}
