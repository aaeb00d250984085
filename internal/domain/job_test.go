package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const jobYAML = `
tag1: v1.0
tag2: v1.1
gitDirectory: /workspace/repo
gitBranch: main
gitUrl: https://git.example.com/repo.git
gitCredentialsId: git-creds
gitCommitterName: Release Bot
gitCommitterMail: release@example.com
gitCommitMessageValidationOmmiter: Merge
pushReleaseNotes: true
jiraUrl: https://jira.example.com
jiraCredentialsId: jira-creds
jiraIssuePattern: PROJ-\d+
issueFilterByComponent: backend
issueFilterByType: ""
issueFilterByLabel: release
issueFilterByStatus: Done
issueSortType: Bug,Story
issueSortPriority: Critical,Major
reportDirectory: notes
reportTemplate: default.ftl
`

const jobHCL = `
release_notes {
  tag1                                  = "v1.0"
  tag2                                  = env.RELEASE_TAG
  git_directory                         = "/workspace/repo"
  git_branch                            = "main"
  git_url                               = "https://git.example.com/repo.git"
  git_credentials_id                    = "git-creds"
  git_committer_name                    = "Release Bot"
  git_committer_mail                    = "release@example.com"
  git_commit_message_validation_omitter = "Merge"
  push_release_notes                    = true
  jira_url                              = "https://jira.example.com"
  jira_credentials_id                   = "jira-creds"
  jira_issue_pattern                    = "PROJ-\\d+"
  issue_filter_by_component             = "backend"
  issue_filter_by_label                 = "release"
  issue_filter_by_status                = "Done"
  issue_sort_type                       = "Bug,Story"
  issue_sort_priority                   = "Critical,Major"
  report_directory                      = "notes"
  report_template                       = "default.ftl"
}
`

func wantJob() BuildStepConfiguration {
	return BuildStepConfiguration{
		Tag1:                              "v1.0",
		Tag2:                              "v1.1",
		GitDirectory:                      "/workspace/repo",
		GitBranch:                         "main",
		GitURL:                            "https://git.example.com/repo.git",
		GitCredentialsID:                  "git-creds",
		GitCommitterName:                  "Release Bot",
		GitCommitterMail:                  "release@example.com",
		GitCommitMessageValidationOmitter: "Merge",
		PushReleaseNotes:                  true,
		JiraURL:                           "https://jira.example.com",
		JiraCredentialsID:                 "jira-creds",
		JiraIssuePattern:                  `PROJ-\d+`,
		IssueFilterByComponent:            "backend",
		IssueFilterByLabel:                "release",
		IssueFilterByStatus:               "Done",
		IssueSortType:                     "Bug,Story",
		IssueSortPriority:                 "Critical,Major",
		ReportDirectory:                   "notes",
		ReportTemplate:                    "default.ftl",
	}
}

func writeJobFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write job file: %v", err)
	}
	return path
}

// TestLoadJobConfiguration_YAML tests loading a YAML job file.
func TestLoadJobConfiguration_YAML(t *testing.T) {
	job, err := LoadJobConfiguration(writeJobFile(t, "job.yaml", jobYAML), nil)
	if err != nil {
		t.Fatalf("LoadJobConfiguration() error = %v", err)
	}
	if diff := cmp.Diff(wantJob(), job); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadJobConfiguration_HCL tests loading an HCL job file with env references.
func TestLoadJobConfiguration_HCL(t *testing.T) {
	env := map[string]string{"RELEASE_TAG": "v1.1"}

	job, err := LoadJobConfiguration(writeJobFile(t, "job.hcl", jobHCL), env)
	if err != nil {
		t.Fatalf("LoadJobConfiguration() error = %v", err)
	}
	if diff := cmp.Diff(wantJob(), job); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadJobConfiguration_Errors tests the failure modes of job loading.
func TestLoadJobConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantErr  string
		skipFile bool
	}{
		{name: "missing file", file: "missing.yaml", skipFile: true, wantErr: "job configuration file not found"},
		{name: "unsupported extension", file: "job.json", content: "{}", wantErr: "unsupported job configuration format"},
		{name: "invalid yaml", file: "job.yaml", content: "tag1: [", wantErr: "invalid YAML syntax"},
		{name: "invalid hcl", file: "job.hcl", content: "release_notes {", wantErr: "failed to parse HCL file"},
		{name: "no block", file: "job.hcl", content: "", wantErr: "exactly one release_notes block, found 0"},
		{name: "two blocks", file: "job.hcl", content: "release_notes {}\nrelease_notes {}\n", wantErr: "exactly one release_notes block, found 2"},
		{name: "undefined env", file: "job.hcl", content: "release_notes {\n  tag1 = env.NOPE\n}\n", wantErr: "failed to decode HCL file"},
		{name: "unknown attribute", file: "job.hcl", content: "release_notes {\n  tag3 = \"x\"\n}\n", wantErr: "failed to decode HCL file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if !tt.skipFile {
				path = writeJobFile(t, tt.file, tt.content)
			}

			_, err := LoadJobConfiguration(path, map[string]string{})
			if err == nil {
				t.Fatalf("LoadJobConfiguration() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadJobConfiguration() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
