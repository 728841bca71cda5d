// Package config provides configuration management for record-roll.
//
// This package handles:
//   - Loading settings from INI (default) or TOML files
//   - Default values for optional keys
//   - Environment overrides for the catalog path and the API token
//   - Writing a settings file for `record-roll init`
//
// # Loading
//
//	settings, err := config.Load("config.ini")
//	if err != nil {
//	    // ErrConfigNotFound or *MissingKeyError: tell the user to
//	    // create the file from config.example.ini
//	}
//
// # Required Keys
//
// Only two keys are required:
//
//	csv_file = ~/records/collection.csv
//	token    = <discogs user token>
//
// DISCOGS_TOKEN and RECORD_ROLL_CSV_FILE override them, and may also be
// kept in a .env file in the working directory.
//
// # Optional Keys
//
// Settings includes options for:
//   - Catalog header handling and file watching
//   - API base URL, request timeout and re-roll limit
//   - Cover export directory and file naming
//   - Log file and level
package config
