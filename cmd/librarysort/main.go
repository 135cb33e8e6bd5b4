package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/sbezverk/librarysort"
	"github.com/sbezverk/librarysort/intline"
	"github.com/sbezverk/librarysort/service"
	"github.com/sbezverk/librarysort/sort"
)

const (
	prompt      = "Enter numbers separated by a comma:"
	dialTimeout = 10 * time.Second
)

type config struct {
	input  string
	listen string
	remote string
	cache  int
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "input", "", "comma separated integers to sort, read from stdin when empty")
	flag.StringVar(&cfg.listen, "listen", "", "address to serve the sort service on")
	flag.StringVar(&cfg.remote, "remote", "", "address of a sort service to sort with instead of sorting locally")
	flag.IntVar(&cfg.cache, "cache-size", service.DefaultCacheSize, "number of sort results the sort service keeps")
	flag.Parse()

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

func run(cfg config, stdin io.Reader, stdout io.Writer) error {
	if cfg.listen != "" {
		return serve(cfg.listen, cfg.cache, librarysort.SetupSignalHandler())
	}
	line := cfg.input
	if line == "" {
		fmt.Fprintln(stdout, prompt)
		var err error
		if line, err = readLine(stdin); err != nil {
			return err
		}
	}
	var sorted string
	var err error
	if cfg.remote != "" {
		sorted, err = sortRemote(cfg.remote, line)
	} else {
		sorted, err = sortLocal(line)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, sorted)

	return nil
}

func serve(addr string, cacheSize int, stopCh <-chan struct{}) error {
	srv, err := service.New(addr, cacheSize)
	if err != nil {
		return fmt.Errorf("failed to start sort service on %s: %w", addr, err)
	}
	<-stopCh
	srv.Stop()

	return nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func sortLocal(line string) (string, error) {
	seq, err := intline.Parse(line)
	if err != nil {
		return "", err
	}
	glog.V(5).Infof("Sorting %d values", len(seq))

	return intline.Format(sort.Sort(seq)), nil
}

func sortRemote(addr, line string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	conn, err := service.Dial(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("failed to connect to sort service %s: %w", addr, err)
	}
	defer conn.Close()
	glog.V(5).Infof("Sending sort request to %s", addr)

	return service.NewClient(conn).Sort(ctx, line)
}
