// Package staging owns the lifetime of transient audio files: a
// synthesized clip is staged to a unique temp file, uploaded by the
// caller, and removed either immediately or after a scheduled delay.
package staging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Artifact is a staged audio file pending upload. Remove runs at
// most once no matter how many branches of the caller reach it.
type Artifact struct {
	path string
	once sync.Once
}

func (a *Artifact) Path() string {
	return a.path
}

// Remove deletes the underlying file. Safe to call from a defer and
// again from a cleanup task; only the first call touches the disk.
func (a *Artifact) Remove() {
	a.once.Do(func() {
		if err := os.Remove(a.path); err != nil {
			logrus.WithError(err).WithField("path", a.path).Warnln("failed to remove staged artifact")
		}
	})
}

// Stage creates a unique temp file and streams audio into it via
// fill. On any failure the partial file is cleaned up before the
// error is returned, so a non-nil Artifact is the only thing that
// ever needs removing.
func Stage(fill func(w io.Writer) error) (*Artifact, error) {
	f, err := os.CreateTemp("", "voicy-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file; %w", err)
	}

	if err := fill(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to stage audio; %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to flush staged audio; %w", err)
	}

	return &Artifact{path: f.Name()}, nil
}
