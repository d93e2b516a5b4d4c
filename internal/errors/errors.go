// Package errors provides sentinel errors and custom error types for the forkit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrConfigNotFound indicates that the fork.yaml configuration file is missing
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrDirtyWorktree indicates that the working copy has uncommitted changes
	ErrDirtyWorktree = errors.New("uncommitted changes in working copy")

	// ErrMergeConflict indicates that a merge operation encountered a conflict
	ErrMergeConflict = errors.New("merge conflict")

	// ErrCyclicDependency indicates that branch base references form a cycle
	ErrCyclicDependency = errors.New("cyclic branch dependency")

	// ErrUnknownBase indicates that a branch declares a base that resolves to nothing
	ErrUnknownBase = errors.New("unknown base branch")

	// ErrStaleRemoteInfo indicates that a force-with-lease push was rejected
	// because the remote moved since it was last observed
	ErrStaleRemoteInfo = errors.New("stale remote info")
)

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// MergeConflictError represents a conflict while merging a branch into the fork branch
type MergeConflictError struct {
	BranchName string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict while merging %s", e.BranchName)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(branchName string) *MergeConflictError {
	return &MergeConflictError{BranchName: branchName}
}

// CycleError reports a cycle in the branch base graph. Cycle holds the branch
// names along the back-edge, starting and ending at the same branch.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic branch dependency: %s", strings.Join(e.Cycle, " -> "))
}

// Is returns true if the target error is ErrCyclicDependency
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicDependency
}

// NewCycleError creates a new CycleError
func NewCycleError(cycle []string) *CycleError {
	return &CycleError{Cycle: cycle}
}

// UnknownBaseError reports a branch whose declared base is neither another
// declared branch nor the root base.
type UnknownBaseError struct {
	BranchName string
	BaseName   string
}

func (e *UnknownBaseError) Error() string {
	return fmt.Sprintf("branch %s declares unknown base %s", e.BranchName, e.BaseName)
}

// Is returns true if the target error is ErrUnknownBase
func (e *UnknownBaseError) Is(target error) bool {
	return target == ErrUnknownBase
}

// NewUnknownBaseError creates a new UnknownBaseError
func NewUnknownBaseError(branchName, baseName string) *UnknownBaseError {
	return &UnknownBaseError{BranchName: branchName, BaseName: baseName}
}
