// ABOUTME: Version constants for the sendspin-player binary
// ABOUTME: Reported in client/hello and used for the --version CLI flag
package version

const (
	// Version is the client software version advertised in client/hello.
	Version = "0.1.0"

	// Product is the human-readable player name.
	Product = "Sendspin Go Player"

	// Manufacturer identifies the client implementation to servers and logs.
	Manufacturer = "Sendspin"
)
