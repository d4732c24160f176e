package container

// ProbeResult is the outcome of a single probe.
type ProbeResult struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Detected bool   `json:"detected"`
	Error    string `json:"error,omitempty"`
}

// Report is the full outcome of a detection run.
type Report struct {
	Container bool          `json:"container"`
	Probes    []ProbeResult `json:"probes"`
}

// Explain runs every probe, without short-circuiting, and reports each
// outcome. It always re-reads the filesystem and neither reads nor populates
// the cached verdict of IsContainer.
func (d *Detector) Explain() Report {
	report := Report{Probes: make([]ProbeResult, 0, len(d.probes))}

	for _, p := range d.probes {
		ok, err := p.Run(d.fs)

		res := ProbeResult{Name: p.Name, Path: p.Path, Detected: ok}
		if err != nil {
			res.Detected = false
			res.Error = err.Error()
		}

		report.Container = report.Container || res.Detected
		report.Probes = append(report.Probes, res)
	}

	return report
}
