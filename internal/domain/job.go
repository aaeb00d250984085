package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// BuildStepConfiguration holds every field a user enters for the release notes step.
// It is created when the job configuration is saved and is never mutated by the step.
type BuildStepConfiguration struct {
	Tag1 string `yaml:"tag1" hcl:"tag1,optional"`
	Tag2 string `yaml:"tag2" hcl:"tag2,optional"`

	GitDirectory                      string `yaml:"gitDirectory" hcl:"git_directory,optional"`
	GitBranch                         string `yaml:"gitBranch" hcl:"git_branch,optional"`
	GitURL                            string `yaml:"gitUrl" hcl:"git_url,optional"`
	GitCredentialsID                  string `yaml:"gitCredentialsId" hcl:"git_credentials_id,optional"`
	GitCommitterName                  string `yaml:"gitCommitterName" hcl:"git_committer_name,optional"`
	GitCommitterMail                  string `yaml:"gitCommitterMail" hcl:"git_committer_mail,optional"`
	GitCommitMessageValidationOmitter string `yaml:"gitCommitMessageValidationOmmiter" hcl:"git_commit_message_validation_omitter,optional"`
	PushReleaseNotes                  bool   `yaml:"pushReleaseNotes" hcl:"push_release_notes,optional"`

	JiraURL           string `yaml:"jiraUrl" hcl:"jira_url,optional"`
	JiraCredentialsID string `yaml:"jiraCredentialsId" hcl:"jira_credentials_id,optional"`
	JiraIssuePattern  string `yaml:"jiraIssuePattern" hcl:"jira_issue_pattern,optional"`

	// Empty filters mean "no filter" and are passed to the generator as-is.
	IssueFilterByComponent string `yaml:"issueFilterByComponent" hcl:"issue_filter_by_component,optional"`
	IssueFilterByType      string `yaml:"issueFilterByType" hcl:"issue_filter_by_type,optional"`
	IssueFilterByLabel     string `yaml:"issueFilterByLabel" hcl:"issue_filter_by_label,optional"`
	IssueFilterByStatus    string `yaml:"issueFilterByStatus" hcl:"issue_filter_by_status,optional"`
	IssueSortType          string `yaml:"issueSortType" hcl:"issue_sort_type,optional"`
	IssueSortPriority      string `yaml:"issueSortPriority" hcl:"issue_sort_priority,optional"`

	ReportDirectory string `yaml:"reportDirectory" hcl:"report_directory,optional"`
	ReportTemplate  string `yaml:"reportTemplate" hcl:"report_template,optional"`
}

// hclJobFile is the top-level structure of an HCL job file.
type hclJobFile struct {
	Steps []BuildStepConfiguration `hcl:"release_notes,block"`
}

// LoadJobConfiguration reads a job's step configuration from a YAML or HCL file.
// The format is chosen by extension: .hcl for HCL, .yaml/.yml for YAML.
// HCL expressions may reference env.NAME for every entry of env.
func LoadJobConfiguration(path string, env map[string]string) (BuildStepConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BuildStepConfiguration{}, fmt.Errorf("job configuration file not found: %s", path)
		}
		return BuildStepConfiguration{}, fmt.Errorf("failed to read job configuration file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return parseJobHCL(data, path, env)
	case ".yaml", ".yml":
		return parseJobYAML(data)
	default:
		return BuildStepConfiguration{}, fmt.Errorf("unsupported job configuration format %q: must be .yaml, .yml or .hcl", filepath.Ext(path))
	}
}

func parseJobYAML(data []byte) (BuildStepConfiguration, error) {
	var cfg BuildStepConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BuildStepConfiguration{}, fmt.Errorf("invalid YAML syntax in job configuration file: %w", err)
	}
	return cfg, nil
}

func parseJobHCL(data []byte, filename string, env map[string]string) (BuildStepConfiguration, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return BuildStepConfiguration{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclJobFile
	diags = gohcl.DecodeBody(file.Body, envEvalContext(env), &parsed)
	if diags.HasErrors() {
		return BuildStepConfiguration{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	if len(parsed.Steps) != 1 {
		return BuildStepConfiguration{}, fmt.Errorf("HCL file %s must contain exactly one release_notes block, found %d", filename, len(parsed.Steps))
	}

	return parsed.Steps[0], nil
}

// envEvalContext exposes env as the "env" object variable.
func envEvalContext(env map[string]string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(env))
	for name, value := range env {
		values[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(values),
		},
	}
}
