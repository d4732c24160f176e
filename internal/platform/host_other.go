//go:build !linux

package platform

func CgroupMode() string { return "unavailable" }

func RunningInUserNS() bool { return false }

func KernelRelease() string { return "" }
