package config

import (
	"os"
	"testing"

	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/output"
	"github.com/ivoronin/dupereconcile/internal/planner"
	"github.com/ivoronin/dupereconcile/internal/types"
)

func valid(t *testing.T) Config {
	t.Helper()
	c := Default()
	c.Directories = []string{t.TempDir()}
	return c
}

func TestValidateRequiresDirectory(t *testing.T) {
	c := Default()
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing directories")
	}
}

func TestValidateRejectsNonExistentDirectory(t *testing.T) {
	c := Default()
	c.Directories = []string{"/nonexistent/path/for/testing"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for non-existent directory")
	}
}

func TestValidateRejectsFileAsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := dir + "/notadir"
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := Default()
	c.Directories = []string{file}
	if err := c.Validate(); err == nil {
		t.Error("expected error when a directory argument is a regular file")
	}
}

func TestValidateRejectsNonExistentTarget(t *testing.T) {
	c := valid(t)
	c.Target = "/nonexistent/path/for/testing"
	if err := c.Validate(); err == nil {
		t.Error("expected error for non-existent target")
	}
}

func TestValidateRejectsUnknownAlgorithm(t *testing.T) {
	c := valid(t)
	c.Algorithm = hasher.Algorithm("md7")
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	c := valid(t)
	c.Mode = types.SelectionStrategy("random")
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestValidateFastModeRequiresCacheLocation(t *testing.T) {
	c := valid(t)
	c.FastMode = true
	if err := c.Validate(); err == nil {
		t.Error("expected error when fast-mode set without cache-location")
	}
	c.CacheLocation = "/tmp/cache"
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error with cache-location set: %v", err)
	}
}

func TestValidateOutputRequiresKnownFormat(t *testing.T) {
	c := valid(t)
	c.Output = "out.yaml"
	c.Format = output.Format("yaml")
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestTargetRootDefaultsToLastDirectory(t *testing.T) {
	c := valid(t)
	c.Directories = []string{"/a", "/b", "/c"}
	if got := c.TargetRoot(); got != "/c" {
		t.Errorf("TargetRoot() = %q, want /c", got)
	}
	if got := c.SourceRoots(); len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Errorf("SourceRoots() = %v, want [/a /b]", got)
	}
}

func TestTargetRootExplicitOverride(t *testing.T) {
	c := valid(t)
	c.Directories = []string{"/a", "/b"}
	c.Target = "/explicit"
	if got := c.TargetRoot(); got != "/explicit" {
		t.Errorf("TargetRoot() = %q, want /explicit", got)
	}
	if got := c.SourceRoots(); len(got) != 2 {
		t.Errorf("SourceRoots() = %v, want both directories when Target is explicit", got)
	}
}

func TestPlannerModeDerivation(t *testing.T) {
	c := valid(t)
	if c.PlannerMode() != planner.ModeListOnly {
		t.Errorf("PlannerMode() = %v, want ModeListOnly by default", c.PlannerMode())
	}
	c.MoveTo = "/archive"
	if c.PlannerMode() != planner.ModeMove {
		t.Errorf("PlannerMode() = %v, want ModeMove", c.PlannerMode())
	}
	c.Delete = true
	if c.PlannerMode() != planner.ModeDelete {
		t.Errorf("PlannerMode() = %v, want ModeDelete (delete takes priority)", c.PlannerMode())
	}
}
