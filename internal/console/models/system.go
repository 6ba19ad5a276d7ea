package models

// OTASettings configures over-the-air update access.
type OTASettings struct {
	Enabled  bool   `json:"enabled"`
	Port     int    `json:"port"`
	Password string `json:"password"`
}

// SystemStatus is the device's self-report of platform and memory figures.
type SystemStatus struct {
	ESPPlatform     string `json:"esp_platform"`
	MaxAllocHeap    int    `json:"max_alloc_heap"`
	CPUFreqMHz      int    `json:"cpu_freq_mhz"`
	FreeHeap        int    `json:"free_heap"`
	SketchSize      int    `json:"sketch_size"`
	FreeSketchSpace int    `json:"free_sketch_space"`
	SDKVersion      string `json:"sdk_version"`
	FlashChipSize   int    `json:"flash_chip_size"`
	FlashChipSpeed  int    `json:"flash_chip_speed"`
	FSTotal         int    `json:"fs_total"`
	FSUsed          int    `json:"fs_used"`
}
