// Package locator turns command line arguments into the identifiers the API
// client expects.
package locator

import (
	"fmt"
	"strconv"
	"strings"
)

type ArgumentError struct {
	Argument string
	Message  string
}

func (a ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", a.Argument, a.Message)
}

// Args is the subset of cli.Args used by the locators.
type Args interface {
	Get(n int) string
	Len() int
}

type Locator interface {
	LoadFrom(args Args) error
}

type RepositoryLocator struct {
	Owner string
	Repo  string
}

func (r *RepositoryLocator) String() string {
	return r.Owner + "/" + r.Repo
}

// Parse reads an "owner/repo" pair.
func (r *RepositoryLocator) Parse(value string) error {
	owner, repo, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return ArgumentError{Argument: value, Message: "expected OWNER/REPO"}
	}
	r.Owner = owner
	r.Repo = repo
	return nil
}

func (r *RepositoryLocator) LoadFrom(args Args) error {
	if args.Len() < 1 {
		return ArgumentError{Message: "missing OWNER/REPO"}
	}
	return r.Parse(args.Get(0))
}

func parseID(value, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, ArgumentError{Argument: value, Message: "expected a positive " + what}
	}
	return id, nil
}

// ArtifactLocator identifies an artifact as "OWNER/REPO ID".
type ArtifactLocator struct {
	RepositoryLocator
	ArtifactID int64
}

func (a *ArtifactLocator) LoadFrom(args Args) error {
	if args.Len() < 2 {
		return ArgumentError{Message: "expected OWNER/REPO ARTIFACT_ID"}
	}
	if err := a.RepositoryLocator.Parse(args.Get(0)); err != nil {
		return err
	}

	id, err := parseID(args.Get(1), "artifact id")
	if err != nil {
		return err
	}
	a.ArtifactID = id
	return nil
}

// RunLocator identifies a workflow run as "OWNER/REPO RUN_ID".
type RunLocator struct {
	RepositoryLocator
	RunID int64
}

func (r *RunLocator) LoadFrom(args Args) error {
	if args.Len() < 2 {
		return ArgumentError{Message: "expected OWNER/REPO RUN_ID"}
	}
	if err := r.RepositoryLocator.Parse(args.Get(0)); err != nil {
		return err
	}

	id, err := parseID(args.Get(1), "run id")
	if err != nil {
		return err
	}
	r.RunID = id
	return nil
}

// ScopeLocator names an organization or enterprise.
type ScopeLocator struct {
	Name string
}

func (s *ScopeLocator) LoadFrom(args Args) error {
	if args.Len() < 1 || strings.TrimSpace(args.Get(0)) == "" {
		return ArgumentError{Message: "missing organization or enterprise name"}
	}
	name := strings.TrimSpace(args.Get(0))
	if strings.Contains(name, "/") {
		return ArgumentError{Argument: name, Message: "expected an organization or enterprise name"}
	}
	s.Name = name
	return nil
}
