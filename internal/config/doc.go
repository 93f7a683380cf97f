// Package config loads canvasedit settings.
//
// Settings are resolved in three layers, later layers overriding earlier
// ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. Environment variables prefixed with CANVASEDIT_
//
// The merged result is decoded into a Config and validated. A Watcher can
// reload the file when it changes and hand the new Config to subscribers.
//
// # Example
//
//	cfg, err := config.Load(config.WithFile("canvasedit.toml"))
//	if err != nil {
//	    return err
//	}
//	eng.ApplyConfig(cfg)
package config
