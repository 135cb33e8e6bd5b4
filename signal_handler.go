package librarysort

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
)

var (
	onlyOneSignalHandler = make(chan struct{})
	shutdownSignals      = []os.Signal{os.Interrupt, syscall.SIGTERM}
)

// SetupSignalHandler returns a channel which is closed on the first SIGINT or SIGTERM,
// a second signal terminates the program with exit code 1.
// It must be called only once.
func SetupSignalHandler() (stopCh <-chan struct{}) {
	close(onlyOneSignalHandler) // panics when called twice

	stop := make(chan struct{})
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)
	go func() {
		s := <-c
		glog.Infof("Received %s, shutting down", s)
		close(stop)
		<-c
		glog.Errorf("Received second signal, exiting")
		glog.Flush()
		os.Exit(1)
	}()

	return stop
}
