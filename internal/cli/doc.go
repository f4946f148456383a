// Package cli parses the loginform command line into a validated
// config.Config. Flags override values read from the optional config file.
package cli
