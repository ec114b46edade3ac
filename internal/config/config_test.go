package config

import (
	"testing"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

func TestDefaultConfigValidates(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestTemplateLookup(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	layout, name, err := cfg.Audit.Template("")
	if err != nil {
		t.Fatalf("default template: %v", err)
	}
	if name != cfg.Audit.DefaultTemplate {
		t.Fatalf("name=%q, want default %q", name, cfg.Audit.DefaultTemplate)
	}
	if !layout.HasColumn(model.RoleCategoryLabel) {
		t.Fatalf("v2 template should use a category-label column")
	}

	v1, _, err := cfg.Audit.Template("heat-transfer-v1")
	if err != nil {
		t.Fatalf("v1 template: %v", err)
	}
	if v1.HasColumn(model.RoleCategoryLabel) {
		t.Fatalf("v1 template should not have a category-label column")
	}
	if len(v1.Categories) != 7 {
		t.Fatalf("v1 enumerates %d categories, want 7", len(v1.Categories))
	}

	if _, _, err := cfg.Audit.Template("no-such-template"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestValidateRejectsBadDefault(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Audit.DefaultTemplate = "missing"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing default template")
	}
}
