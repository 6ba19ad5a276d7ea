// devicesim runs an in-memory stand-in for the sprinkler device's REST
// surface, for developing the console without hardware on the bench.
package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/sprinklerworks/sprinklerctl/internal/buildinfo"
	"github.com/sprinklerworks/sprinklerctl/internal/devicesim"
	"github.com/sprinklerworks/sprinklerctl/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	addr := flag.String("a", ":8080", "listen address")
	insecure := flag.Bool("insecure", false, "disable the security feature")
	scan := flag.Duration("scan", 3*time.Second, "simulated network scan duration")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := devicesim.DefaultConfig()
	cfg.ScanDuration = *scan
	if *insecure {
		cfg.Features.Security = false
	}

	srv := devicesim.New(cfg, logger)
	log.Printf("devicesim listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		log.Fatalf("%v", err)
	}

}
