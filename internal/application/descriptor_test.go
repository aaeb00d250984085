package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"release-notes-plugin/internal/domain"
)

type savingStore struct {
	saved []bool
	err   error
}

func (s *savingStore) LoadToggle() (bool, bool, error) { return false, false, nil }

func (s *savingStore) SaveToggle(enabled bool) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, enabled)
	return nil
}

func newTestDescriptor(store domain.CredentialStore) (*Descriptor, *savingStore) {
	toggleStore := &savingStore{}
	return NewDescriptor(domain.NewGlobalToggle(toggleStore, false), store), toggleStore
}

// TestDescriptor_FillCredentialsItems tests the credential selection lists.
func TestDescriptor_FillCredentialsItems(t *testing.T) {
	store := stepCredentials()
	store.credentials = append(store.credentials, domain.Credential{ID: "no-description", Kind: domain.KindUsernamePassword})
	descriptor, _ := newTestDescriptor(store)

	sc := domain.SecurityContext{
		ItemPath:    "team-a/service-x",
		Permissions: []domain.Permission{domain.PermissionConfigure},
	}
	want := []CredentialOption{
		{Name: "- none -", Value: ""},
		{Name: "Git bot", Value: "git-creds"},
		{Name: "Jira bot", Value: "jira-creds"},
		{Name: "no-description", Value: "no-description"},
	}

	for name, fill := range map[string]func(context.Context, domain.SecurityContext) ([]CredentialOption, error){
		"git":  descriptor.FillGitCredentialsItems,
		"jira": descriptor.FillJiraCredentialsItems,
	} {
		got, err := fill(context.Background(), sc)
		if err != nil {
			t.Fatalf("%s: error = %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: options mismatch (-want +got):\n%s", name, diff)
		}
	}
}

// TestDescriptor_FillCredentialsItems_NoPermission tests that unauthorized callers get nothing.
func TestDescriptor_FillCredentialsItems_NoPermission(t *testing.T) {
	descriptor, _ := newTestDescriptor(stepCredentials())

	got, err := descriptor.FillGitCredentialsItems(context.Background(), teamABuild().Security)
	if err != nil {
		t.Fatalf("error = %v, want nil", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("options = %#v, want empty non-nil list", got)
	}
}

// TestDescriptor_FillCredentialsItems_StoreError tests store failures.
func TestDescriptor_FillCredentialsItems_StoreError(t *testing.T) {
	descriptor, _ := newTestDescriptor(&memoryStore{err: errors.New("store unavailable")})
	sc := domain.SecurityContext{Permissions: []domain.Permission{domain.PermissionConfigure}}

	if _, err := descriptor.FillJiraCredentialsItems(context.Background(), sc); err == nil {
		t.Error("expected error for failing store")
	}
}

// TestDescriptor_Configure tests that saving the global configuration updates the toggle.
func TestDescriptor_Configure(t *testing.T) {
	descriptor, toggleStore := newTestDescriptor(stepCredentials())

	if descriptor.UseGit() {
		t.Fatal("expected toggle off initially")
	}
	if err := descriptor.Configure(true); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if !descriptor.UseGit() {
		t.Error("expected toggle on after Configure(true)")
	}
	if diff := cmp.Diff([]bool{true}, toggleStore.saved); diff != "" {
		t.Errorf("saved mismatch (-want +got):\n%s", diff)
	}

	toggleStore.err = errors.New("disk full")
	if err := descriptor.Configure(false); err == nil {
		t.Error("expected error when save fails")
	}
	if !descriptor.UseGit() {
		t.Error("expected toggle unchanged after failed save")
	}
}

// TestDescriptor_Fields tests display name, applicability and field checks.
func TestDescriptor_Fields(t *testing.T) {
	descriptor, _ := newTestDescriptor(stepCredentials())

	if descriptor.DisplayName() != "Release notes plugin" {
		t.Errorf("DisplayName() = %s, want Release notes plugin", descriptor.DisplayName())
	}
	for _, kind := range []string{"freestyle", "pipeline", ""} {
		if !descriptor.IsApplicable(kind) {
			t.Errorf("IsApplicable(%q) = false, want true", kind)
		}
	}

	if result := descriptor.CheckGitDirectory(""); result.OK() || result.Message != "Please set git directory" {
		t.Errorf("CheckGitDirectory(\"\") = %+v, want error 'Please set git directory'", result)
	}
	if result := descriptor.CheckGitDirectory("/workspace/repo"); !result.OK() {
		t.Errorf("CheckGitDirectory() = %+v, want ok", result)
	}
}
