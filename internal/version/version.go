// Package version provides version information for the typedroutes CLI.
package version

import "fmt"

// Version is set via ldflags during build.
var Version = "dev"

// GeneratorSchemaVersion is bumped when the generated manifest or Go source
// changes shape in a way that requires regeneration.
const GeneratorSchemaVersion = 1

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetGeneratorSchemaVersion returns the current generator schema version.
func GetGeneratorSchemaVersion() int {
	return GeneratorSchemaVersion
}

// String returns the version line printed by the CLI.
func String() string {
	return fmt.Sprintf("typedroutes %s (schema %d)", Version, GeneratorSchemaVersion)
}
