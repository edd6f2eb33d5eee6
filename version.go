// Package createmystack holds build metadata for the create-my-stack CLI.
package createmystack

// Version is the CLI version reported by --version.
var Version = "1.0.0"
