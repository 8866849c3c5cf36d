package tests_test

import (
	"fmt"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// expectPassed returns a comparator verifying that the given experiment's
// result card reports its "OK" glyph. It looks for a line matching:
// OK [<experiment>] ...
func expectPassed(experiment string) func(stdout string, testing tig.T) {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		marker := fmt.Sprintf("[%s]", experiment)

		for _, line := range strings.Split(stdout, "\n") {
			if strings.Contains(line, marker) {
				if !strings.HasPrefix(strings.TrimSpace(line), "OK") {
					testing.Log(fmt.Sprintf("expected %q to pass, found: %s", experiment, line))
					testing.Fail()
				}

				return
			}
		}

		testing.Log(fmt.Sprintf("expected result card for %q not found in output:\n%s", experiment, stdout))
		testing.Fail()
	}
}

// expectFailed is the mirror of expectPassed: it requires the "!!" glyph.
func expectFailed(experiment string) func(stdout string, testing tig.T) {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		marker := fmt.Sprintf("[%s]", experiment)

		for _, line := range strings.Split(stdout, "\n") {
			if strings.Contains(line, marker) {
				if !strings.HasPrefix(strings.TrimSpace(line), "!!") {
					testing.Log(fmt.Sprintf("expected %q to fail, found: %s", experiment, line))
					testing.Fail()
				}

				return
			}
		}

		testing.Log(fmt.Sprintf("expected result card for %q not found in output:\n%s", experiment, stdout))
		testing.Fail()
	}
}

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) func(stdout string, testing tig.T) {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}
