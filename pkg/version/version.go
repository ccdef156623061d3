// Package version provides version information for burparse
package version

// Version is the current version of the burparse library
const Version = "0.3.0"

// GetVersion returns the current version of the library
func GetVersion() string {
	return Version
}
