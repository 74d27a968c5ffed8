package utils

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chainflow/bridge-router/log"
)

// TopWaitGroup is waited on by main before exiting, components that need
// graceful shutdown add themselves to it.
var TopWaitGroup = new(sync.WaitGroup)

var cleanupChan = make(chan struct{})
var cleanupOnce sync.Once

// IsCleanuping is the process shutting down
func IsCleanuping() bool {
	select {
	case <-cleanupChan:
		return true
	default:
		return false
	}
}

// InitSignalHandler translate SIGINT/SIGTERM into the cleanup broadcast
func InitSignalHandler() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signalChan
		log.Info("received shutdown signal", "signal", sig)
		Cleanup()
	}()
}

// Cleanup broadcast the shutdown to all waiters
func Cleanup() {
	cleanupOnce.Do(func() {
		close(cleanupChan)
	})
}

// WaitAndCleanup block until shutdown then run the cleanup func.
// The caller must have added itself to TopWaitGroup, and the cleanup func
// is responsible for the matching Done.
func WaitAndCleanup(cleanup func()) {
	<-cleanupChan
	cleanup()
}
