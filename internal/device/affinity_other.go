//go:build !linux

package device

// Thread identity is not observable; every caller looks like the owner.
func threadID() int { return 0 }
