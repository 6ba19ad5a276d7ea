package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sprinklerworks/sprinklerctl/internal/console/gate"
	"github.com/sprinklerworks/sprinklerctl/internal/console/nav"
	"github.com/sprinklerworks/sprinklerctl/internal/console/session"
)

func (a *App) prompt() string {
	if p, ok := a.sessions.Principal(); ok {
		return fmt.Sprintf("sprinklerctl (%s)> ", p.Username)
	}
	return "sprinklerctl> "
}

func (a *App) root(ctx context.Context) {
	fmt.Fprintln(a.out, "Sprinkler console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(a.out, a.prompt())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "signin", "login":
			a.signInView(ctx)
		case "signout", "logout":
			a.sessions.SignOut(ctx)
		case "status":
			a.protected(ctx, nav.RouteSprinkler, a.sprinklerStatusView)
		case "schedule":
			a.protected(ctx, nav.RouteSprinkler, a.scheduleView)
		case "wifi":
			a.protected(ctx, nav.RouteWiFi, a.wifiSettingsView)
		case "wifistatus":
			a.protected(ctx, nav.RouteWiFi, a.wifiStatusView)
		case "scan":
			a.protected(ctx, nav.RouteWiFi, a.scanView)
		case "ap":
			a.protected(ctx, nav.RouteAP, a.apSettingsView)
		case "apstatus":
			a.protected(ctx, nav.RouteAP, a.apStatusView)
		case "ntp":
			a.protected(ctx, nav.RouteNTP, a.ntpSettingsView)
		case "ntpstatus":
			a.protected(ctx, nav.RouteNTP, a.ntpStatusView)
		case "time":
			a.protected(ctx, nav.RouteNTP, a.timeView)
		case "security":
			a.protected(ctx, nav.RouteSecurity, a.securityView)
		case "system":
			a.protected(ctx, nav.RouteSystem, a.systemStatusView)
		case "ota":
			a.protected(ctx, nav.RouteSystem, a.otaSettingsView)
		case "restart":
			a.protected(ctx, nav.RouteSystem, a.restartView)
		case "factoryreset":
			a.protected(ctx, nav.RouteSystem, a.factoryResetView)
		case "upload":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: upload <firmware file>")
				continue
			}
			file := args[0]
			a.protected(ctx, nav.RouteSystem, func(ctx context.Context, _ session.Principal) error {
				return a.uploadFirmwareView(ctx, file)
			})
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if _, ok := a.sessions.Principal(); ok {
		fmt.Fprintln(a.out, "Available commands: status, schedule, wifi, wifistatus, scan, ap, apstatus,")
		fmt.Fprintln(a.out, "  ntp, ntpstatus, time, security, system, ota, restart, factoryreset,")
		fmt.Fprintln(a.out, "  upload <file>, signout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: signin, exit")
	}
}

// protected runs view through the access gate. When the gate bounces to
// sign-in, the sign-in view opens right away and, on success, the stored
// destination view is rendered — the console's version of the post-login
// redirect.
func (a *App) protected(ctx context.Context, dest nav.Route, view gate.View) {
	err := a.gate.Admit(ctx, dest, view)
	switch {
	case errors.Is(err, gate.ErrNotInitialized):
		fmt.Fprintln(a.out, "Session not ready yet, try again.")
	case errors.Is(err, gate.ErrNotAuthenticated):
		a.signInView(ctx)
		if _, ok := a.sessions.Principal(); ok {
			a.openCurrentRoute(ctx)
		}
	case err != nil:
		a.log.Error(ctx, "view failed", "error", err)
	}
}

// openCurrentRoute renders whatever route the router points at, used after
// a successful sign-in consumed the stored redirect.
func (a *App) openCurrentRoute(ctx context.Context) {
	switch a.router.Current() {
	case nav.RouteSprinkler:
		_ = a.gate.Admit(ctx, nav.RouteSprinkler, a.sprinklerStatusView)
	case nav.RouteWiFi:
		_ = a.gate.Admit(ctx, nav.RouteWiFi, a.wifiSettingsView)
	case nav.RouteAP:
		_ = a.gate.Admit(ctx, nav.RouteAP, a.apSettingsView)
	case nav.RouteNTP:
		_ = a.gate.Admit(ctx, nav.RouteNTP, a.ntpSettingsView)
	case nav.RouteSecurity:
		_ = a.gate.Admit(ctx, nav.RouteSecurity, a.securityView)
	case nav.RouteSystem:
		_ = a.gate.Admit(ctx, nav.RouteSystem, a.systemStatusView)
	}
}
