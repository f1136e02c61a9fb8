// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - WebSocket position stream, watch mode, packed record layout docs
// 0.2.0 - HTTP API, YAML configuration, terminal sun tracker
// 0.1.0 - Initial release: solar position routine, boundary adapter, CLI
