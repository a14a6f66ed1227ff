package runconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// parseCargoMetadata reads the [package.metadata.runcc] or
// [workspace.metadata.runcc] table out of a Cargo.toml, used as a last
// resort when no dedicated runcc.* config file exists — letting a Rust
// project colocate its runcc config inside its existing manifest.
// Exactly one of the two tables may be present; having both is an
// error, and having neither means "no config here" (nil, nil).
func parseCargoMetadata(data []byte) (*RunConfig, error) {
	var root map[string]any
	if _, err := toml.Decode(string(data), &root); err != nil {
		return nil, fmt.Errorf("runconfig: Cargo.toml: %w", err)
	}

	pkgTable, pkgOK := lookupMetadataTable(root, "package")
	wspTable, wspOK := lookupMetadataTable(root, "workspace")

	switch {
	case pkgOK && wspOK:
		return nil, ErrCargoMetadataDuplicate
	case pkgOK:
		return resolveRunConfig(pkgTable)
	case wspOK:
		return resolveRunConfig(wspTable)
	default:
		return nil, nil
	}
}

// lookupMetadataTable descends root[section]["metadata"]["runcc"],
// tolerating any level being absent (which just means "not present").
func lookupMetadataTable(root map[string]any, section string) (map[string]any, bool) {
	sectionTable, ok := root[section].(map[string]any)
	if !ok {
		return nil, false
	}
	metadataTable, ok := sectionTable["metadata"].(map[string]any)
	if !ok {
		return nil, false
	}
	runccTable, ok := metadataTable["runcc"].(map[string]any)
	if !ok {
		return nil, false
	}
	return runccTable, true
}
