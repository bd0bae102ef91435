// Package version provides centralized version information for the cmdq daemon
// and CLI. Both binaries version independently and follow semver.
package version

// CmdqdVersion holds the current cmdqd daemon version.
// Format: major.minor.patch[-prerelease][+build]
const CmdqdVersion = "0.1.0-dev"

// CmdqctlVersion holds the current cmdqctl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const CmdqctlVersion = "0.1.0-dev"
