// Package config provides configuration for the unipointer tool.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Arguments  │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  2. Environment Variables   │  ← UNIPOINTER_*
//	├─────────────────────────────┤
//	│  1. Configuration File      │  ← .toml, .yaml or .yml
//	├─────────────────────────────┤
//	│  0. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load("unipointer.toml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// A missing configuration file is not an error; Load returns the defaults.
//
// # Sub-packages
//
//   - watcher: File watching for live reload of scripts and configuration
package config
