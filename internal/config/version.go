package config

import (
	"fmt"

	gv "github.com/hashicorp/go-version"
)

// Version is the mathflow release, overridable with -ldflags -X.
var Version = "0.1.0"

// CheckRequiredVersion reports whether current satisfies the constraint
// string of a required_version attribute.
func CheckRequiredVersion(constraint, current string) error {
	cs, err := gv.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("required_version %q: %w", constraint, err)
	}
	cur, err := gv.NewVersion(current)
	if err != nil {
		return fmt.Errorf("mathflow version %q: %w", current, err)
	}
	if !cs.Check(cur) {
		return fmt.Errorf("mathflow %s does not satisfy required_version %q", cur, constraint)
	}
	return nil
}
