package main

import (
	"github.com/david3xu/mining-reliability-db-sub000/internal/config"
	"github.com/david3xu/mining-reliability-db-sub000/internal/logging"
	"github.com/david3xu/mining-reliability-db-sub000/internal/store"
)

// loadConfig reads the config file if one was given, otherwise uses the
// defaults, and points the process logger at the configured level and
// format.
func loadConfig(path string) (*config.File, error) {
	f := config.Default()
	if path != "" {
		var err error
		f, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	level, err := logging.ParseLevel(f.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.Init(level, f.LogFormat)
	return f, nil
}

// openStore opens the run store, preferring the flag path over the config
// path.
func openStore(f *config.File, flagPath string) (store.Store, error) {
	path := f.StorePath
	if flagPath != "" {
		path = flagPath
	}
	if path == "" {
		path = store.DefaultDBPath
	}
	return store.Open(path)
}
