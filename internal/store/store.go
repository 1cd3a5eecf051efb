// Package store loads and saves the user-editable YAML tables that extend
// the built-in column aliases and document type names.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cajapyme/libro-caja/internal/classify"
	"cajapyme/libro-caja/internal/colmap"
	"cajapyme/libro-caja/internal/config"
	"cajapyme/libro-caja/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// SchemaStore manages the YAML files holding user-provided column alias
// spellings and document type names.
type SchemaStore struct {
	AliasesFile  string
	DocTypesFile string
}

// NewSchemaStore creates a store for the schema override files.
func NewSchemaStore(aliasesFile, docTypesFile string) *SchemaStore {
	return &SchemaStore{
		AliasesFile:  aliasesFile,
		DocTypesFile: docTypesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *SchemaStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/libro-caja/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "libro-caja", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// resolveConfigFile gets the full path to a config file
func (s *SchemaStore) resolveConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		log.Debugf("Configuration file not found: %s", filename)
		return "", err
	}

	return path, nil
}

// LoadAliases returns the alias tables for every schema. User spellings are
// layered in front of the built-in ones, so a custom alias outranks the
// defaults during resolution. A missing file just yields the defaults.
func (s *SchemaStore) LoadAliases() (map[colmap.Schema]colmap.Aliases, error) {
	merged := map[colmap.Schema]colmap.Aliases{
		colmap.SchemaVentas:  colmap.DefaultAliases(colmap.SchemaVentas),
		colmap.SchemaCompras: colmap.DefaultAliases(colmap.SchemaCompras),
		colmap.SchemaResumen: colmap.DefaultAliases(colmap.SchemaResumen),
	}

	filename := s.AliasesFile
	if filename == "" {
		filename = "aliases.yaml"
	}

	filePath, err := s.resolveConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return merged, nil
		}
		return nil, fmt.Errorf("error resolving aliases file: %w", err)
	}

	// Absolute paths skip the search, so the file may still be missing.
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("Aliases file not found: %s", filePath)
			return merged, nil
		}
		return nil, fmt.Errorf("error checking aliases file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("error reading aliases file: %w", err)
	}

	var custom map[colmap.Schema]colmap.Aliases
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("error parsing aliases file: %w", err)
	}

	for schema, fields := range custom {
		base, ok := merged[schema]
		if !ok {
			log.Warnf("Ignoring aliases for unknown schema: %s", schema)
			continue
		}
		for field, names := range fields {
			base[field] = append(append([]string(nil), names...), base[field]...)
		}
	}

	log.Debugf("Loaded custom aliases from %s", filePath)
	return merged, nil
}

// LoadDocTypeNames returns the document type name table with user entries
// overlaid on the built-in SII names. A missing file yields the defaults.
func (s *SchemaStore) LoadDocTypeNames() (map[int]string, error) {
	names := classify.DefaultDocTypeNames()

	filename := s.DocTypesFile
	if filename == "" {
		filename = "doctypes.yaml"
	}

	filePath, err := s.resolveConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return names, nil
		}
		return nil, fmt.Errorf("error resolving document types file: %w", err)
	}

	// Absolute paths skip the search, so the file may still be missing.
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("Document types file not found: %s", filePath)
			return names, nil
		}
		return nil, fmt.Errorf("error checking document types file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("error reading document types file: %w", err)
	}

	var custom map[int]string
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("error parsing document types file: %w", err)
	}

	for code, name := range custom {
		names[code] = name
	}

	log.Debugf("Loaded %d custom document type names from %s", len(custom), filePath)
	return names, nil
}

// SaveAliases writes the custom alias spellings to YAML.
func (s *SchemaStore) SaveAliases(custom map[colmap.Schema]colmap.Aliases) error {
	filename := s.AliasesFile
	if filename == "" {
		filename = "aliases.yaml"
	}
	return s.saveYAML(filename, custom)
}

// SaveDocTypeNames writes the custom document type names to YAML.
func (s *SchemaStore) SaveDocTypeNames(custom map[int]string) error {
	filename := s.DocTypesFile
	if filename == "" {
		filename = "doctypes.yaml"
	}
	return s.saveYAML(filename, custom)
}

func (s *SchemaStore) saveYAML(filename string, value interface{}) error {
	// Find the existing file or fall back to the working directory.
	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error resolving %s: %w", filename, err)
		}
		filePath = filename
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshaling %s: %w", filename, err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	log.Debugf("Saved %s", filePath)
	return nil
}
