package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	"permission-wizard/internal/model"
)

var (
	// UnrecognizedFormatError is returned when the content is not well-formed
	// or matches none of the known dialects.
	UnrecognizedFormatError = errors.New("could not parse config: unrecognized format")
	// NoRanksError is returned when a dialect was detected but no rank could
	// be read from it.
	NoRanksError = errors.New("no ranks found in config")

	UnsupportedExtensionError = errors.New("unsupported file extension, expected .yml, .yaml or .json")
)

// source is a detected dialect together with the decoded document.
type source struct {
	dialect model.Dialect
	json    *luckPermsExport
	yaml    *yaml.Node
}

// DetectPluginType reports which dialect the content is written in.
func DetectPluginType(content string) (model.Dialect, bool) {
	src, err := detect(content)
	if err != nil {
		return "", false
	}
	return src.dialect, true
}

func detect(content string) (*source, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, UnrecognizedFormatError
	}

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var export luckPermsExport
		if err := json.Unmarshal([]byte(trimmed), &export); err == nil && export.Groups != nil {
			return &source{dialect: model.DialectLuckPerms, json: &export}, nil
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", UnrecognizedFormatError, err)
	}
	root := documentRoot(&doc)
	if !isMapping(root) {
		return nil, UnrecognizedFormatError
	}

	if groups := lookup(root, "groups"); isMapping(groups) {
		entries := pairs(groups)
		if len(entries) > 0 {
			first := entries[0].value
			if hasKey(first, "inheritance") || isMapping(lookup(first, "info")) {
				return &source{dialect: model.DialectGroupManager, yaml: root}, nil
			}
			if hasKey(first, "parents") && hasKey(first, "options") {
				return &source{dialect: model.DialectPermissionsEx, yaml: root}, nil
			}
		}
	}

	entries := pairs(root)
	if len(entries) > 0 {
		first := entries[0].value
		if isMapping(first) && (hasKey(first, "weight") || (hasKey(first, "permissions") && !hasKey(first, "inheritance"))) {
			return &source{dialect: model.DialectLuckPerms, yaml: root}, nil
		}
	}

	return nil, UnrecognizedFormatError
}

// ParseConfig detects the dialect of the content and reads its ranks, sorted
// by ascending weight.
func ParseConfig(content string) (*model.ParsedConfig, error) {
	src, err := detect(content)
	if err != nil {
		return nil, err
	}

	var ranks []model.ParsedRank
	switch {
	case src.json != nil:
		ranks = parseLuckPermsJSON(src.json)
	case src.dialect == model.DialectLuckPerms:
		ranks = parseLuckPermsYAML(src.yaml)
	case src.dialect == model.DialectGroupManager:
		ranks = parseGroupManager(src.yaml)
	case src.dialect == model.DialectPermissionsEx:
		ranks = parsePermissionsEx(src.yaml)
	}

	if len(ranks) == 0 {
		return nil, fmt.Errorf("%w (%s)", NoRanksError, src.dialect)
	}
	sortByWeight(ranks)

	perms := make([]string, 0)
	for _, r := range ranks {
		perms = append(perms, r.Permissions...)
	}

	return &model.ParsedConfig{
		PluginType:      src.dialect,
		Ranks:           ranks,
		DetectedPlugins: DetectPluginsFromPermissions(perms),
	}, nil
}

// ParseFile is ParseConfig for uploaded files. Files with an extension other
// than .yml, .yaml or .json are rejected before parsing.
func ParseFile(filename string, content string) (*model.ParsedConfig, error) {
	if !SupportedFile(filename) {
		return nil, fmt.Errorf("%w: %s", UnsupportedExtensionError, filename)
	}
	return ParseConfig(content)
}

func SupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yml", ".yaml", ".json":
		return true
	}
	return false
}

func sortByWeight(ranks []model.ParsedRank) {
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Weight < ranks[j].Weight
	})
}

// declarationWeight is the weight given to the i-th rank of a dialect that
// has no weight of its own.
func declarationWeight(i int) int {
	return i * 10
}
