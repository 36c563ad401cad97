package driver

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// runCC invokes the external C compiler with the fixed flags spec.md
// §6.3 specifies: `cc -std=c11 [-c] -o <out> <inputs>`.
func runCC(compile bool, out string, inputs []string) error {
	args := []string{"-std=c11"}
	if compile {
		args = append(args, "-c")
	}
	args = append(args, "-o", out)
	args = append(args, inputs...)

	cmd := exec.Command("cc", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &ExternalToolError{Tool: "cc", Args: args, Err: err, Output: string(output)}
	}

	return nil
}

var ccVersionToken = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// checkMinCC probes `cc --version`, extracts the first semver-shaped
// token, and verifies it satisfies constraint. Wired to
// github.com/Masterminds/semver/v3, the same version-constraint library
// the teacher's package manager uses for dependency resolution
// (cmd/orizon/pkg/commands/outdated.go).
func checkMinCC(constraint string) error {
	cmd := exec.Command("cc", "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &ExternalToolError{Tool: "cc", Args: []string{"--version"}, Err: err, Output: string(output)}
	}

	token := ccVersionToken.FindString(string(output))
	if token == "" {
		return &ExternalToolError{
			Tool: "cc", Args: []string{"--version"},
			Err: fmt.Errorf("could not find a version number in: %s", strings.TrimSpace(string(output))),
		}
	}

	version, err := semver.NewVersion(token)
	if err != nil {
		return &ExternalToolError{Tool: "cc", Args: []string{"--version"}, Err: fmt.Errorf("parsing cc version %q: %w", token, err)}
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid --min-cc constraint %q: %w", constraint, err)
	}

	if !c.Check(version) {
		return &ExternalToolError{
			Tool: "cc", Args: []string{"--version"},
			Err: fmt.Errorf("cc version %s does not satisfy constraint %s", version, constraint),
		}
	}

	return nil
}
