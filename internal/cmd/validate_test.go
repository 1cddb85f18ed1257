package cmd

import (
	"strings"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, NewValidateCommand())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if !strings.Contains(out, "Catalog OK") {
		t.Errorf("Expected validation success, got: %s", out)
	}
	for _, section := range []string{"governance", "awareness", "accessControl", "infrastructure", "incidentResponse", "resilience"} {
		if !strings.Contains(out, section) {
			t.Errorf("Expected section %s in output, got: %s", section, out)
		}
	}
	if !strings.Contains(out, "137.75") {
		t.Errorf("Expected total maximum in output, got: %s", out)
	}
}
