//go:build linux

package device

import "golang.org/x/sys/unix"

func threadID() int { return unix.Gettid() }
