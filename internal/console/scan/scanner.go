package scan

import (
	"sort"

	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/models"
	"github.com/sprinklerworks/sprinklerctl/internal/console/notify"
	"github.com/sprinklerworks/sprinklerctl/internal/console/resource"
)

// NetworkScanner polls the device's WiFi scan: start answers 202, the list
// endpoint answers 202 until the radio finishes, then 200 with the networks.
type NetworkScanner struct {
	*Poller[models.WiFiNetworkList]
}

func NewNetworkScanner(fetch resource.Doer, notifier notify.Notifier) *NetworkScanner {
	cfg := Config{
		StartPath:      api.ScanNetworksEndpoint,
		StatusPath:     api.ListNetworksEndpoint,
		Label:          "scanning",
		TimeoutMessage: "Device did not return network list in timely manner.",
	}
	return &NetworkScanner{
		Poller: NewPoller(cfg, fetch, notifier, sortByStrength),
	}
}

// sortByStrength orders scan results strongest signal first.
func sortByStrength(list *models.WiFiNetworkList) {
	sort.SliceStable(list.Networks, func(i, j int) bool {
		return list.Networks[i].RSSI > list.Networks[j].RSSI
	})
}
