package requirement

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the constraint every manifest version must satisfy.
const SupportedVersions = "^1"

func checkVersion(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, v, err)
	}

	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parse constraint %s: %w", SupportedVersions, err)
	}
	if !c.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, ver, SupportedVersions)
	}
	return nil
}
