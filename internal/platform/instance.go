package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	instanceMinPort = 20000
	instanceMaxPort = 39999
)

// Instance is the single-instance lock: a loopback port derived from the
// application name that only one process can hold. Nothing is exchanged
// over it.
type Instance struct {
	listener net.Listener
}

// AcquireInstance binds the application's loopback port, or returns
// ErrAlreadyRunning when another process holds it.
func AcquireInstance(appName string, logger *slog.Logger) (*Instance, error) {
	if logger == nil {
		logger = slog.Default()
	}
	address := fmt.Sprintf("127.0.0.1:%d", instancePort(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Debug("instance lock held elsewhere", "address", address, "error", err)
		return nil, ErrAlreadyRunning
	}
	logger.Debug("instance lock acquired", "address", address)
	return &Instance{listener: listener}, nil
}

// Release frees the lock.
func (instance *Instance) Release() error {
	if instance == nil || instance.listener == nil {
		return nil
	}
	return instance.listener.Close()
}

func instancePort(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return instanceMinPort + int(hash.Sum32()%uint32(instanceMaxPort-instanceMinPort+1))
}
