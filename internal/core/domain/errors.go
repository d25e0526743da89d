package domain

import (
	"errors"
	"fmt"
)

// NoEditableFilesError is returned when a directory holds nothing that can
// be edited: no manifests, no editable plugins, no helpers and no templates
type NoEditableFilesError struct {
	Directory string
}

func (e *NoEditableFilesError) Error() string {
	return fmt.Sprintf("there are no editable files at %s", e.Directory)
}

// IsNoEditableFiles reports whether err is or wraps a NoEditableFilesError
func IsNoEditableFiles(err error) bool {
	var target *NoEditableFilesError
	return errors.As(err, &target)
}

// DegradationKind names the step that degraded
type DegradationKind string

const (
	PluginLoadDegradation  DegradationKind = "plugin_load"
	PluginBuildDegradation DegradationKind = "plugin_build"
)

// Degradation is a recovered failure. The edit continues with an empty
// result for the degraded step and reports the degradation as a warning.
type Degradation struct {
	Kind DegradationKind
	Err  error
}

// NewDegradation wraps err as a degradation of the given kind
func NewDegradation(kind DegradationKind, err error) *Degradation {
	return &Degradation{Kind: kind, Err: err}
}

func (d *Degradation) Error() string {
	switch d.Kind {
	case PluginLoadDegradation:
		return fmt.Sprintf("unable to load plugins, continuing without them: %v", d.Err)
	case PluginBuildDegradation:
		return fmt.Sprintf("unable to build plugin modules, continuing without them: %v", d.Err)
	default:
		return fmt.Sprintf("%s: %v", d.Kind, d.Err)
	}
}

func (d *Degradation) Unwrap() error {
	return d.Err
}

// CollaboratorStage names the external step an edit was in when it failed
type CollaboratorStage string

const (
	StageDiscovery  CollaboratorStage = "discovery"
	StageMapping    CollaboratorStage = "graph mapping"
	StageGeneration CollaboratorStage = "descriptor generation"
	StageWriting    CollaboratorStage = "writing"
)

// CollaboratorError is a fatal failure raised by an external collaborator.
// It is not retried.
type CollaboratorError struct {
	Stage CollaboratorStage
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
