package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tenderflow/engine/internal/link"
	"github.com/tenderflow/engine/internal/workflow"
)

// GrantsFile is the YAML schema for permission grants: a map from
// actor name to the permission tokens the actor holds.
//
// Example:
//
//	actors:
//	  alice: [procurement_admin]
//	  bob: [publish_rfq, evaluate_submission]
type GrantsFile struct {
	Actors map[string][]string `yaml:"actors"`
}

// LoadGrants reads a grants file and returns the permission set for
// one actor. An actor absent from the file holds no permissions.
func LoadGrants(path, actor string) (workflow.Grants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grants file: %w", err)
	}

	var file GrantsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse grants file %s: %w", path, err)
	}

	return workflow.Grants(file.Actors[actor]), nil
}

// EntitiesFile is the YAML schema for entity snapshots keyed by entity
// ID. Field values stay loosely typed; the link validator only checks
// presence.
//
// Example:
//
//	entities:
//	  plan-1:
//	    id: plan-1
//	    title: Road resurfacing 2026
//	    status: approved
type EntitiesFile struct {
	Entities map[string]map[string]any `yaml:"entities"`
}

// LoadSnapshots reads an entities file and returns the snapshots for
// the two given IDs. Missing entries yield empty snapshots so
// validation reports every required field, matching the best-effort
// contract of snapshot providers.
func LoadSnapshots(path, sourceID, targetID string) (link.Snapshot, link.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read entities file: %w", err)
	}

	var file EntitiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse entities file %s: %w", path, err)
	}

	return link.Snapshot(file.Entities[sourceID]), link.Snapshot(file.Entities[targetID]), nil
}

// IssuesFile is the YAML schema for externally validated blocking
// issues, one plain string per issue.
//
// Example:
//
//	issues:
//	  - required documents not yet submitted
//	  - evaluation committee not appointed
type IssuesFile struct {
	Issues []string `yaml:"issues"`
}

// LoadIssues reads a blocking-issues file. An empty or absent issues
// list means the step validation passed.
func LoadIssues(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read issues file: %w", err)
	}

	var file IssuesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse issues file %s: %w", path, err)
	}

	return file.Issues, nil
}
