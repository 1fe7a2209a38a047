package main

import (
	"time"

	"github.com/sells-group/scraper-ui/pkg/scraperapi"
)

// newBackendClient builds the backend client from the loaded config.
func newBackendClient() scraperapi.Client {
	return scraperapi.NewClient(cfg.Backend.BaseURL,
		scraperapi.WithTimeout(cfg.Backend.Timeout()),
	)
}

// displayLocation returns the configured zone, or local time if it is unset.
func displayLocation() *time.Location {
	loc, err := cfg.Display.Location()
	if err != nil {
		return time.Local
	}
	return loc
}
