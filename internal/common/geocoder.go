package common

import (
	"sync"

	"github.com/kelvins/geocoder"
)

var geocoderKey struct {
	mu  sync.Mutex
	set bool
}

// SetGeocoderKey stores the Google API key in the geocoder package, which
// holds it in a package variable. The first non-empty key wins.
func SetGeocoderKey(key string) {
	if key == "" {
		return
	}
	geocoderKey.mu.Lock()
	defer geocoderKey.mu.Unlock()
	if geocoderKey.set {
		return
	}
	geocoder.ApiKey = key
	geocoderKey.set = true
}
