package platform

// Info describes the environment the current process runs in.
type Info struct {
	CgroupMode    string `json:"cgroupMode"`
	UserNamespace bool   `json:"userNamespace"`
	Kernel        string `json:"kernel,omitempty"`
}

// Inspect gathers Info for the current process.
func Inspect() Info {
	return Info{
		CgroupMode:    CgroupMode(),
		UserNamespace: RunningInUserNS(),
		Kernel:        KernelRelease(),
	}
}
