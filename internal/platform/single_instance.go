package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net"
	"path/filepath"
	"strconv"
)

// ErrAlreadyRunning reports that another desktop host owns the same
// preferences directory.
var ErrAlreadyRunning = errors.New("desktop host already running for this data directory")

// InstanceGuard is held by the desktop host for its whole run. Two hosts on
// one data directory would overwrite each other's settings edits, so the
// guard is keyed by app name and data directory; other directories may run
// side by side.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance takes the lock for dataDir by binding a localhost
// port derived from it.
func AcquireSingleInstance(appName, dataDir string) (*InstanceGuard, error) {
	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(lockPort(appName, dataDir)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (lock %s): %v", ErrAlreadyRunning, address, err)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Release drops the lock. Repeated calls and nil guards are no-ops.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound lock address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func lockPort(appName, dataDir string) int {
	const (
		firstPort = 20000
		portCount = 20000
	)
	hash := fnv.New32a()
	_, _ = io.WriteString(hash, appName)
	_, _ = hash.Write([]byte{0})
	_, _ = io.WriteString(hash, filepath.Clean(dataDir))
	return firstPort + int(hash.Sum32()%portCount)
}
