package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cperrin88/aptbridge/internal/logger"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/fsutil"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var requiredFields = []string{"id", "name", "description", "filters"}

// Load reads every *.yaml and *.yml file in dir, in filename order. Files
// that fail to parse or validate are logged and skipped, and a later file
// repeating an id is ignored. A missing directory yields no stores.
func Load(dir string) ([]*Config, error) {
	if !fsutil.IsDir(dir) {
		logger.Debug("Store directory not available", logger.Fields{"dir": dir})
		return []*Config{}, nil
	}

	files, err := fsutil.ListFiles(dir, ".yaml", ".yml")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list store directory %s", dir)
	}

	stores := make([]*Config, 0, len(files))
	seen := make(map[string]string)
	for _, file := range files {
		cfg, err := LoadFile(file)
		if err != nil {
			logger.Warn("Skipping invalid store file", logger.Fields{"file": file, "error": err.Error()})
			continue
		}
		if first, dup := seen[cfg.ID]; dup {
			logger.Warn("Skipping store with duplicate id", logger.Fields{
				"file":     file,
				"id":       cfg.ID,
				"first_in": filepath.Base(first),
			})
			continue
		}
		seen[cfg.ID] = file
		stores = append(stores, cfg)
	}

	logger.Debug("Loaded stores", logger.Fields{"dir": dir, "count": len(stores)})
	return stores, nil
}

// LoadFile parses a single store definition.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates one store definition document.
func Parse(data []byte) (*Config, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.ErrStoreRoot
	}

	for _, field := range requiredFields {
		if _, present := root[field]; !present {
			return nil, errors.Wrapf(errors.ErrStoreMissingField, "'%s'", field)
		}
	}
	if _, ok := root["filters"].(map[string]interface{}); !ok {
		return nil, errors.ErrStoreFilters
	}

	root["category_metadata"] = validCategoryMetadata(root["category_metadata"])

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &cfg,
		TagName: "yaml",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(root); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	filters, err := NewFilter(cfg.Filters.IncludeOrigins, cfg.Filters.IncludeSections,
		cfg.Filters.IncludeTags, cfg.Filters.IncludePackages)
	if err != nil {
		return nil, err
	}

	validated, err := NewConfig(cfg.ID, cfg.Name, cfg.Description, filters)
	if err != nil {
		return nil, err
	}
	validated.Icon = cfg.Icon
	validated.Banner = cfg.Banner
	validated.CategoryMetadata = cfg.CategoryMetadata
	validated.CustomSections = cfg.CustomSections
	return validated, nil
}

// validCategoryMetadata drops entries without both an id and a label.
func validCategoryMetadata(raw interface{}) interface{} {
	entries, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	kept := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok || !nonEmptyString(m["id"]) || !nonEmptyString(m["label"]) {
			logger.Warn("Skipping category metadata entry without id or label", logger.Fields{"entry": entry})
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func nonEmptyString(v interface{}) bool {
	s, ok := v.(string)
	return ok && s != ""
}

// Directory is a store directory on disk.
type Directory string

// Stores loads the definitions in the directory.
func (d Directory) Stores() ([]*Config, error) {
	return Load(string(d))
}
