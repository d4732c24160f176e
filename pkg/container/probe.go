package container

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

const (
	dockerEnvPath    = "/.dockerenv"
	containerEnvPath = "/run/.containerenv"
	initMountInfo    = "/proc/1/mountinfo"
	initCgroup       = "/proc/1/cgroup"
)

// mountRootField is the zero-indexed mountinfo field holding the root of the
// mount within its filesystem.
const mountRootField = 3

// containerPathMarkers are the path segments that container engines leave in
// cgroup and mount root paths.
var containerPathMarkers = []string{"/docker/", "/lxc/"}

// Probe is a single side-effect-free check against the filesystem for a
// container signal.
type Probe struct {
	// Name identifies the probe in logs and reports.
	Name string
	// Path is the file the probe inspects.
	Path string

	check func(fsys afero.Fs, path string) (bool, error)
}

// Run executes the probe against fsys. A missing source is a negative result,
// not an error.
func (p Probe) Run(fsys afero.Fs) (bool, error) {
	if p.check == nil {
		return false, fmt.Errorf("probe %s: no check", p.Name)
	}

	return p.check(fsys, p.Path)
}

// MarkerProbe returns a Probe that is positive when path exists, whatever its
// type or permissions.
func MarkerProbe(name, path string) Probe {
	return Probe{Name: name, Path: path, check: statExists}
}

// ContentProbe returns a Probe that reads path and is positive when match
// reports true for its content.
func ContentProbe(name, path string, match func(data []byte) bool) Probe {
	return Probe{
		Name: name,
		Path: path,
		check: func(fsys afero.Fs, path string) (bool, error) {
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return false, nil
				}

				return false, fmt.Errorf("read %s: %w", path, err)
			}

			return match(data), nil
		},
	}
}

// DefaultProbes returns the built-in probes in evaluation order.
func DefaultProbes() []Probe {
	return []Probe{
		MarkerProbe("dockerenv", dockerEnvPath),
		MarkerProbe("containerenv", containerEnvPath),
		ContentProbe("mountinfo", initMountInfo, mountRootMatches),
		ContentProbe("cgroup", initCgroup, containsPathMarker),
	}
}

func statExists(fsys afero.Fs, path string) (bool, error) {
	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	return true, nil
}

// mountRootMatches reports whether any mountinfo line has a container path
// marker in its mount root field. Other fields are ignored since device and
// mount source paths can carry unrelated "docker" or "lxc" segments.
func mountRootMatches(data []byte) bool {
	for line := range bytes.Lines(data) {
		fields := strings.Fields(string(line))
		if len(fields) <= mountRootField {
			continue
		}

		if containsPathMarker([]byte(fields[mountRootField])) {
			return true
		}
	}

	return false
}

// containsPathMarker reports whether data contains a container path marker
// anywhere.
func containsPathMarker(data []byte) bool {
	for _, m := range containerPathMarkers {
		if bytes.Contains(data, []byte(m)) {
			return true
		}
	}

	return false
}
