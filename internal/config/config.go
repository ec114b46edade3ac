package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/louknahm29/HeatTransferEvaluation/internal/model"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Audit  AuditConfig  `toml:"audit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig holds storage settings.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// AuditConfig holds the checklist layout templates. Each template describes
// one revision of the checklist form; the process request picks one by name.
type AuditConfig struct {
	DefaultTemplate string                         `toml:"default_template"`
	Templates       map[string]*model.LayoutConfig `toml:"templates"`
}

// Template resolves a template by name, falling back to the default when the
// name is empty.
func (a *AuditConfig) Template(name string) (*model.LayoutConfig, string, error) {
	if name == "" {
		name = a.DefaultTemplate
	}
	layout, ok := a.Templates[name]
	if !ok {
		return nil, name, fmt.Errorf("unknown checklist template %q", name)
	}
	return layout, name, nil
}

// DefaultConfig returns the built-in configuration, including the two known
// checklist revisions.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20281,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Audit: AuditConfig{
			DefaultTemplate: "heat-transfer-v2",
			Templates: map[string]*model.LayoutConfig{
				"heat-transfer-v2": heatTransferV2(),
				"heat-transfer-v1": heatTransferV1(),
			},
		},
	}
}

// heatTransferV2 is the current checklist revision: a category column with
// merged cells (forward-filled on read) next to the question text.
func heatTransferV2() *model.LayoutConfig {
	return &model.LayoutConfig{
		MetadataRows: 8,
		MetadataCells: map[string]model.CellRef{
			model.KeyDateOfAudit:       {Row: 2, Col: 2},
			model.KeyTimeShift:         {Row: 2, Col: 5},
			model.KeyFactory:           {Row: 3, Col: 2},
			model.KeyWorkArea:          {Row: 3, Col: 5},
			model.KeyObservedPersonnel: {Row: 4, Col: 2},
			model.KeySupervisor:        {Row: 4, Col: 5},
			model.KeyMachineID:         {Row: 5, Col: 2},
			model.KeyAuditor:           {Row: 5, Col: 5},
		},
		QuestionHeaderRow: 13,
		Columns: []model.LayoutColumn{
			{Role: model.RoleCategoryLabel, Index: 1},
			{Role: model.RoleQuestionText, Index: 3},
			{Role: model.RoleOKMark, Index: 4},
			{Role: model.RolePartialMark, Index: 5},
			{Role: model.RoleNonconformingMark, Index: 6},
			{Role: model.RoleRemarkText, Index: 7},
		},
	}
}

// heatTransferV1 is the older revision: no category column, numbered items
// like "2.4" whose prefix selects the category.
func heatTransferV1() *model.LayoutConfig {
	return &model.LayoutConfig{
		MetadataRows: 6,
		MetadataCells: map[string]model.CellRef{
			model.KeyDateOfAudit:       {Row: 1, Col: 2},
			model.KeyTimeShift:         {Row: 1, Col: 4},
			model.KeyFactory:           {Row: 2, Col: 2},
			model.KeyWorkArea:          {Row: 2, Col: 4},
			model.KeyObservedPersonnel: {Row: 3, Col: 2},
			model.KeySupervisor:        {Row: 3, Col: 4},
			model.KeyMachineID:         {Row: 4, Col: 2},
			model.KeyAuditor:           {Row: 4, Col: 4},
		},
		QuestionHeaderRow: 11,
		Columns: []model.LayoutColumn{
			{Role: model.RoleItemNumber, Index: 1},
			{Role: model.RoleQuestionText, Index: 2},
			{Role: model.RoleOKMark, Index: 3},
			{Role: model.RolePartialMark, Index: 4},
			{Role: model.RoleNonconformingMark, Index: 5},
			{Role: model.RoleRemarkText, Index: 6},
		},
		Categories: []model.CategoryDef{
			{ID: "1", Name: "Personnel"},
			{ID: "2", Name: "Machine"},
			{ID: "3", Name: "Materials"},
			{ID: "4", Name: "Methods"},
			{ID: "5", Name: "Measurement"},
			{ID: "6", Name: "Environment"},
			{ID: "7", Name: "Documentation & Control"},
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable's directory, falling back
// to the defaults when the file does not exist. Layout templates are
// validated here so a broken template fails at startup, not mid-upload.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if v := os.Getenv("HEATAUDIT_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration, in particular every layout template.
func (c *AppConfig) Validate() error {
	if len(c.Audit.Templates) == 0 {
		return fmt.Errorf("no checklist templates configured")
	}
	if _, ok := c.Audit.Templates[c.Audit.DefaultTemplate]; !ok {
		return fmt.Errorf("default_template %q is not a configured template", c.Audit.DefaultTemplate)
	}
	for name, layout := range c.Audit.Templates {
		if err := layout.Validate(); err != nil {
			return fmt.Errorf("template %q: %w", name, err)
		}
	}
	return nil
}

// SaveConfig writes the configuration to config.toml next to the executable.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories next to
// the executable and returns the absolute path.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
