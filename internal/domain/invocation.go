package domain

import (
	"context"
	"fmt"
	"strings"
)

// InvocationRequest is the parameter set passed to the external release notes generator.
type InvocationRequest struct {
	TagStart         string `json:"tagStart"`
	TagEnd           string `json:"tagEnd"`
	PushReleaseNotes bool   `json:"pushReleaseNotes"`

	GitDirectory                      string `json:"gitDirectory"`
	GitBranch                         string `json:"gitBranch"`
	GitURL                            string `json:"gitUrl"`
	GitUsername                       string `json:"gitUsername"`
	GitPassword                       string `json:"gitPassword"`
	GitCommitterName                  string `json:"gitCommitterName"`
	GitCommitterMail                  string `json:"gitCommitterMail"`
	GitCommitMessageValidationOmitter string `json:"gitCommitMessageValidationOmmiter"`

	JiraURL          string `json:"jiraUrl"`
	JiraUsername     string `json:"jiraUsername"`
	JiraPassword     string `json:"jiraPassword"`
	JiraIssuePattern string `json:"jiraIssuePattern"`

	IssueFilterByComponent string `json:"issueFilterByComponent"`
	IssueFilterByType      string `json:"issueFilterByType"`
	IssueFilterByLabel     string `json:"issueFilterByLabel"`
	IssueFilterByStatus    string `json:"issueFilterByStatus"`
	IssueSortType          string `json:"issueSortType"`
	IssueSortPriority      string `json:"issueSortPriority"`

	ReportDirectory string `json:"reportDirectory"`
	ReportTemplate  string `json:"reportTemplate"`
}

// Generator is the external release notes generator.
type Generator interface {
	// Generate produces release notes for req. It blocks until the generator is done.
	Generate(ctx context.Context, req InvocationRequest) error
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req InvocationRequest) error

// Generate calls f(ctx, req).
func (f GeneratorFunc) Generate(ctx context.Context, req InvocationRequest) error {
	return f(ctx, req)
}

type requestField uint32

const (
	fieldTagStart requestField = 1 << iota
	fieldTagEnd
	fieldPushReleaseNotes
	fieldGitDirectory
	fieldGitBranch
	fieldGitURL
	fieldGitUsername
	fieldGitPassword
	fieldGitCommitterName
	fieldGitCommitterMail
	fieldGitCommitMessageValidationOmitter
	fieldJiraURL
	fieldJiraUsername
	fieldJiraPassword
	fieldJiraIssuePattern
	fieldIssueFilterByComponent
	fieldIssueFilterByType
	fieldIssueFilterByLabel
	fieldIssueFilterByStatus
	fieldIssueSortType
	fieldIssueSortPriority
	fieldReportDirectory
	fieldReportTemplate

	allRequestFields = fieldReportTemplate<<1 - 1
)

var requestFieldNames = []string{
	"tagStart", "tagEnd", "pushReleaseNotes",
	"gitDirectory", "gitBranch", "gitUrl", "gitUsername", "gitPassword",
	"gitCommitterName", "gitCommitterMail", "gitCommitMessageValidationOmmiter",
	"jiraUrl", "jiraUsername", "jiraPassword", "jiraIssuePattern",
	"issueFilterByComponent", "issueFilterByType", "issueFilterByLabel", "issueFilterByStatus",
	"issueSortType", "issueSortPriority",
	"reportDirectory", "reportTemplate",
}

// InvocationBuilder accumulates the fields of one InvocationRequest.
// A builder belongs to a single build execution and must not be shared or reused.
type InvocationBuilder struct {
	generator Generator
	req       InvocationRequest
	set       requestField
	used      bool
}

// NewInvocationBuilder creates a builder that delivers its request to generator.
func NewInvocationBuilder(generator Generator) *InvocationBuilder {
	return &InvocationBuilder{generator: generator}
}

// TagStart sets the tag the release range starts at.
func (b *InvocationBuilder) TagStart(v string) *InvocationBuilder {
	b.req.TagStart = v
	b.set |= fieldTagStart
	return b
}

// TagEnd sets the tag the release range ends at.
func (b *InvocationBuilder) TagEnd(v string) *InvocationBuilder {
	b.req.TagEnd = v
	b.set |= fieldTagEnd
	return b
}

// PushReleaseNotes sets whether the generated notes are pushed back to the repository.
func (b *InvocationBuilder) PushReleaseNotes(v bool) *InvocationBuilder {
	b.req.PushReleaseNotes = v
	b.set |= fieldPushReleaseNotes
	return b
}

// GitDirectory sets the path of the local git working copy.
func (b *InvocationBuilder) GitDirectory(v string) *InvocationBuilder {
	b.req.GitDirectory = v
	b.set |= fieldGitDirectory
	return b
}

// GitBranch sets the branch the notes are computed on.
func (b *InvocationBuilder) GitBranch(v string) *InvocationBuilder {
	b.req.GitBranch = v
	b.set |= fieldGitBranch
	return b
}

// GitURL sets the remote URL of the repository.
func (b *InvocationBuilder) GitURL(v string) *InvocationBuilder {
	b.req.GitURL = v
	b.set |= fieldGitURL
	return b
}

// GitUsername sets the username used to access the repository.
func (b *InvocationBuilder) GitUsername(v string) *InvocationBuilder {
	b.req.GitUsername = v
	b.set |= fieldGitUsername
	return b
}

// GitPassword sets the password used to access the repository.
func (b *InvocationBuilder) GitPassword(v string) *InvocationBuilder {
	b.req.GitPassword = v
	b.set |= fieldGitPassword
	return b
}

// GitCommitterName sets the committer name used when notes are pushed.
func (b *InvocationBuilder) GitCommitterName(v string) *InvocationBuilder {
	b.req.GitCommitterName = v
	b.set |= fieldGitCommitterName
	return b
}

// GitCommitterMail sets the committer email used when notes are pushed.
func (b *InvocationBuilder) GitCommitterMail(v string) *InvocationBuilder {
	b.req.GitCommitterMail = v
	b.set |= fieldGitCommitterMail
	return b
}

// GitCommitMessageValidationOmitter sets the pattern of commit messages
// excluded from issue key validation.
func (b *InvocationBuilder) GitCommitMessageValidationOmitter(v string) *InvocationBuilder {
	b.req.GitCommitMessageValidationOmitter = v
	b.set |= fieldGitCommitMessageValidationOmitter
	return b
}

// JiraURL sets the base URL of the Jira instance.
func (b *InvocationBuilder) JiraURL(v string) *InvocationBuilder {
	b.req.JiraURL = v
	b.set |= fieldJiraURL
	return b
}

// JiraUsername sets the username used to query Jira.
func (b *InvocationBuilder) JiraUsername(v string) *InvocationBuilder {
	b.req.JiraUsername = v
	b.set |= fieldJiraUsername
	return b
}

// JiraPassword sets the password used to query Jira.
func (b *InvocationBuilder) JiraPassword(v string) *InvocationBuilder {
	b.req.JiraPassword = v
	b.set |= fieldJiraPassword
	return b
}

// JiraIssuePattern sets the pattern that finds issue keys in commit messages.
func (b *InvocationBuilder) JiraIssuePattern(v string) *InvocationBuilder {
	b.req.JiraIssuePattern = v
	b.set |= fieldJiraIssuePattern
	return b
}

// IssueFilterByComponent sets the component filter. An empty value disables it.
func (b *InvocationBuilder) IssueFilterByComponent(v string) *InvocationBuilder {
	b.req.IssueFilterByComponent = v
	b.set |= fieldIssueFilterByComponent
	return b
}

// IssueFilterByType sets the issue type filter. An empty value disables it.
func (b *InvocationBuilder) IssueFilterByType(v string) *InvocationBuilder {
	b.req.IssueFilterByType = v
	b.set |= fieldIssueFilterByType
	return b
}

// IssueFilterByLabel sets the label filter. An empty value disables it.
func (b *InvocationBuilder) IssueFilterByLabel(v string) *InvocationBuilder {
	b.req.IssueFilterByLabel = v
	b.set |= fieldIssueFilterByLabel
	return b
}

// IssueFilterByStatus sets the status filter. An empty value disables it.
func (b *InvocationBuilder) IssueFilterByStatus(v string) *InvocationBuilder {
	b.req.IssueFilterByStatus = v
	b.set |= fieldIssueFilterByStatus
	return b
}

// IssueSortType sets the issue type ordering of the report.
func (b *InvocationBuilder) IssueSortType(v string) *InvocationBuilder {
	b.req.IssueSortType = v
	b.set |= fieldIssueSortType
	return b
}

// IssueSortPriority sets the priority ordering of the report.
func (b *InvocationBuilder) IssueSortPriority(v string) *InvocationBuilder {
	b.req.IssueSortPriority = v
	b.set |= fieldIssueSortPriority
	return b
}

// ReportDirectory sets the directory the report is written to.
func (b *InvocationBuilder) ReportDirectory(v string) *InvocationBuilder {
	b.req.ReportDirectory = v
	b.set |= fieldReportDirectory
	return b
}

// ReportTemplate sets the template used to render the report.
func (b *InvocationBuilder) ReportTemplate(v string) *InvocationBuilder {
	b.req.ReportTemplate = v
	b.set |= fieldReportTemplate
	return b
}

// Request returns the assembled request, or ErrIncompleteRequest naming the
// fields that were never set.
func (b *InvocationBuilder) Request() (InvocationRequest, error) {
	if b.used {
		return InvocationRequest{}, ErrBuilderUsed
	}
	if missing := b.missingFields(); len(missing) > 0 {
		return InvocationRequest{}, fmt.Errorf("%w: missing %s", ErrIncompleteRequest, strings.Join(missing, ", "))
	}
	return b.req, nil
}

// Invoke hands the request to the generator. It must be the last call on the
// builder; the builder cannot be invoked again afterwards.
func (b *InvocationBuilder) Invoke(ctx context.Context) error {
	if b.used {
		return ErrBuilderUsed
	}

	req, err := b.Request()
	if err != nil {
		return err
	}

	b.used = true
	// Drop the staged secrets; the generator holds the only copy from here on.
	b.req = InvocationRequest{}

	if err := b.generator.Generate(ctx, req); err != nil {
		return &GeneratorError{Err: err}
	}
	return nil
}

func (b *InvocationBuilder) missingFields() []string {
	if b.set == allRequestFields {
		return nil
	}
	var missing []string
	for i, name := range requestFieldNames {
		if b.set&(1<<i) == 0 {
			missing = append(missing, name)
		}
	}
	return missing
}
