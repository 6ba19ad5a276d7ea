package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/models"
	"github.com/sprinklerworks/sprinklerctl/internal/console/session"
)

// postAction fires one fire-and-forget POST (restart, factory reset) and
// reports anything but a 200.
func (a *App) postAction(ctx context.Context, endpoint string, body io.Reader) (bool, error) {
	resp, err := a.fetch.Do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return false, nil
		}
		a.notifier.Error("Problem updating: " + err.Error())
		return false, nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		a.notifier.Error(fmt.Sprintf("Problem updating: Invalid status code: %d", resp.StatusCode))
		return false, nil
	}
	return true, nil
}

// timeView sets the device clock manually, for devices running without time
// synchronization.
func (a *App) timeView(ctx context.Context, _ session.Principal) error {
	value, err := GetSimpleText(a.reader, "Enter local time (2006-01-02T15:04:05)", a.out)
	if err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02T15:04:05", value); err != nil {
		a.notifier.Warning("Invalid time: " + err.Error())
		return nil
	}

	body, err := json.Marshal(models.TimeUpdate{LocalTime: value})
	if err != nil {
		return err
	}
	if ok, err := a.postAction(ctx, api.TimeEndpoint, bytes.NewReader(body)); err != nil || !ok {
		return err
	}
	a.notifier.Success("Update successful.")
	return nil
}

func (a *App) restartView(ctx context.Context, _ session.Principal) error {
	confirmed, err := GetConfirmation(a.reader, "Restart the device?", a.out)
	if err != nil || !confirmed {
		return err
	}
	if ok, err := a.postAction(ctx, api.RestartEndpoint, nil); err != nil || !ok {
		return err
	}
	a.notifier.Success("Device is restarting.")
	return nil
}

func (a *App) factoryResetView(ctx context.Context, _ session.Principal) error {
	confirmed, err := GetConfirmation(a.reader, "Erase all settings and restore factory defaults?", a.out)
	if err != nil || !confirmed {
		return err
	}
	if ok, err := a.postAction(ctx, api.FactoryResetEndpoint, nil); err != nil || !ok {
		return err
	}
	a.notifier.Success("Factory reset in progress.")
	return nil
}

// uploadFirmwareView streams a firmware image to the device, printing
// progress as it goes. Ctrl-C cancels the surrounding context, which the
// upload layer reports as a cancellation rather than a failure.
func (a *App) uploadFirmwareView(ctx context.Context, path string) error {
	if !a.features.UploadFirmware {
		fmt.Fprintln(a.out, "Firmware upload is not available on this device.")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		a.notifier.Error("Problem uploading: " + err.Error())
		return nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		a.notifier.Error("Problem uploading: " + err.Error())
		return nil
	}

	fmt.Fprintf(a.out, "Uploading %s (%d bytes)\n", path, info.Size())
	resp, err := a.fetch.Upload(ctx, api.UploadFirmwareEndpoint, f, info.Size(), func(sent, total int64) {
		if total > 0 {
			fmt.Fprintf(a.out, "\r%d%%", sent*100/total)
		}
	})
	fmt.Fprintln(a.out)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUploadCancelled):
			a.notifier.Warning("Upload cancelled by user")
		case errors.Is(err, api.ErrUnauthorized):
			// Already handled by the fetch layer.
		default:
			a.notifier.Error("Problem uploading: " + err.Error())
		}
		return nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		a.notifier.Error(fmt.Sprintf("Problem uploading: Invalid status code: %d", resp.StatusCode))
		return nil
	}
	a.notifier.Success("Activating new firmware")
	return nil
}
