package kit

import (
	"fmt"
)

// Registry maps each verb to a factory for its collaborator. Factories run
// only at dispatch time for the selected verb — this is the explicit
// lazy-initialization counterpart of loading a subsystem module on demand.
//
// A nil factory means the verb is not wired, which the Load accessors report
// as an operational error rather than a panic.
type Registry struct {
	Dev     func() (DevServer, error)
	Preview func() (PreviewServer, error)
	Build   func() (Builder, error)
	Package func() (Packager, error)
	Sync    func() (Syncer, error)
}

// LoadDev constructs the dev-server collaborator.
func (r *Registry) LoadDev() (DevServer, error) {
	if r.Dev == nil {
		return nil, notWired("dev")
	}
	return r.Dev()
}

// LoadPreview constructs the preview-server collaborator.
func (r *Registry) LoadPreview() (PreviewServer, error) {
	if r.Preview == nil {
		return nil, notWired("preview")
	}
	return r.Preview()
}

// LoadBuild constructs the builder collaborator.
func (r *Registry) LoadBuild() (Builder, error) {
	if r.Build == nil {
		return nil, notWired("build")
	}
	return r.Build()
}

// LoadPackage constructs the packager collaborator.
func (r *Registry) LoadPackage() (Packager, error) {
	if r.Package == nil {
		return nil, notWired("package")
	}
	return r.Package()
}

// LoadSync constructs the sync collaborator.
func (r *Registry) LoadSync() (Syncer, error) {
	if r.Sync == nil {
		return nil, notWired("sync")
	}
	return r.Sync()
}

func notWired(verb string) error {
	return fmt.Errorf("no subsystem registered for %q", verb)
}
