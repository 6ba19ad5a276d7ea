package cli

import (
	"context"
	"fmt"

	"github.com/sprinklerworks/sprinklerctl/internal/console/scan"
	"github.com/sprinklerworks/sprinklerctl/internal/console/session"
)

// scanView starts a network scan and waits for the poll session to reach a
// terminal state. The scanner is closed on the way out so a late timer from
// an abandoned scan cannot fire into a dead view.
func (a *App) scanView(ctx context.Context, _ session.Principal) error {
	scanner := scan.NewNetworkScanner(a.fetch, a.notifier)
	defer scanner.Close()

	fmt.Fprintln(a.out, "Scanning for networks...")
	scanner.Start(ctx)

	done := scanner.Wait()
	if done == nil {
		return nil
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	list, ok := scanner.Result()
	if !ok {
		// Failure and timeout were already reported through the notifier.
		return nil
	}
	if len(list.Networks) == 0 {
		fmt.Fprintln(a.out, "No networks found.")
		return nil
	}

	fmt.Fprintf(a.out, "%-32s %-18s %4s %8s\n", "SSID", "BSSID", "CH", "RSSI")
	for _, n := range list.Networks {
		fmt.Fprintf(a.out, "%-32s %-18s %4d %8d\n", n.SSID, n.BSSID, n.Channel, n.RSSI)
	}
	return nil
}
