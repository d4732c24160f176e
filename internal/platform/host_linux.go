//go:build linux

package platform

import (
	"github.com/containerd/cgroups/v3"
	"github.com/moby/sys/userns"
	"golang.org/x/sys/unix"
)

// CgroupMode returns the cgroup hierarchy mode mounted on the host.
func CgroupMode() string {
	return cgroupModeName(cgroups.Mode())
}

func cgroupModeName(mode cgroups.CGMode) string {
	switch mode {
	case cgroups.Legacy:
		return "legacy"
	case cgroups.Hybrid:
		return "hybrid"
	case cgroups.Unified:
		return "unified"
	default:
		return "unavailable"
	}
}

// RunningInUserNS reports whether the current process is in a non-initial
// user namespace.
func RunningInUserNS() bool {
	return userns.RunningInUserNS()
}

// KernelRelease returns the running kernel's release string, or an empty
// string if uname fails.
func KernelRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}

	return unix.ByteSliceToString(uts.Release[:])
}
