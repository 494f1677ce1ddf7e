// Package config provides configuration management for deanon.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - .env and DEANON_* environment overrides
//   - Conversion to an annotation.Parser
//
// # Default Settings
//
// Use DefaultSettings() to get the defaults:
//
//	settings := config.DefaultSettings()
//	// Reviews data/anonymized_only.csv, column open_nps_reason
//	// Progress kept in state_file.txt
//	// Exports written to data/
//
// # Loading from File
//
//	settings, err := config.Load("deanon.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
//	err := settings.ApplyEnv() // DEANON_INPUT, DEANON_TEXT_COLUMN, ...
//
// # Saving Settings
//
//	settings.TextColumn = "comment"
//	err := settings.Save("deanon.yaml")
package config
