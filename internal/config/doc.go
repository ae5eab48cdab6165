// Package config provides the configuration system for inkwell.
//
// Configuration is resolved in layers, lowest priority first:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← INKWELL_LOG_LEVEL, ...
//	├─────────────────────────────┤
//	│  2. TOML File               │  ← inkwell.toml, "@include" aware
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A missing file is not an error. Durations are written as Go duration
// strings ("3s") or as integer milliseconds.
//
// Example file:
//
//	[log]
//	level = "debug"
//
//	[cursor]
//	target_decay = "3s"
//	line_search_limit = 10000
//
//	[history]
//	max_entries = 1000
//
//	[layout]
//	width = 80
//	tab_width = 4
package config
