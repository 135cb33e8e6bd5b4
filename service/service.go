// Package service exposes the library sort over gRPC.
package service

import (
	"context"
	"net"
	"time"

	"github.com/golang/glog"
	"github.com/sbezverk/librarysort/intline"
	"github.com/sbezverk/librarysort/sort"
	"github.com/sbezverk/librarysort/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	MaxRcvMsgSize = 1024 * 1024
	// DefaultCacheSize is the number of sort results kept by default.
	DefaultCacheSize = 1024
	// MaxCachedKeyLen is the longest canonical input whose result is cached.
	MaxCachedKeyLen = 4096
)

type Server interface {
	Addr() net.Addr
	Stop()
}

var _ SorterServer = &grpcSrv{}

type grpcSrv struct {
	conn    net.Listener
	gSrv    *grpc.Server
	results store.Manager
}

func (srv *grpcSrv) Addr() net.Addr {
	return srv.conn.Addr()
}

func (srv *grpcSrv) Stop() {
	glog.Infof("Stopping sort service on %s", srv.conn.Addr())
	srv.gSrv.Stop()
	srv.conn.Close()
	srv.results.Stop()
}

// New starts the sort service on a TCP listener bound to addr, keeping up to
// cacheSize results.
func New(addr string, cacheSize int) (Server, error) {
	conn, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	return NewWithListener(conn, cacheSize), nil
}

// NewWithListener starts the sort service on an already open listener.
func NewWithListener(conn net.Listener, cacheSize int) Server {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	srv := &grpcSrv{
		conn:    conn,
		results: store.NewStore(store.WithCapacity(cacheSize)),
		gSrv: grpc.NewServer(
			grpc.MaxRecvMsgSize(MaxRcvMsgSize),
			grpc.KeepaliveParams(keepalive.ServerParameters{Time: time.Second * 30, Timeout: time.Second * 10}),
			grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{MinTime: time.Second * 10, PermitWithoutStream: true}),
		),
	}
	RegisterSorterServer(srv.gSrv, srv)

	glog.Infof("Starting sort service on %s", conn.Addr())
	go func() {
		if err := srv.gSrv.Serve(conn); err != nil {
			glog.Errorf("sort service on %s failed with error: %+v", conn.Addr(), err)
		}
	}()

	return srv
}

func (srv *grpcSrv) Sort(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if p, ok := peer.FromContext(ctx); ok {
		glog.V(5).Infof("Sort request from: %s", p.Addr)
	}
	seq, err := intline.Parse(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	key := intline.Format(seq)
	if len(key) > MaxCachedKeyLen {
		glog.V(5).Infof("Sorting %d values without caching", len(seq))
		return wrapperspb.String(intline.Format(sort.Sort(seq))), nil
	}
	if r := srv.results.Get(key); r != nil {
		glog.V(5).Infof("Sort result for %s found in cache", key)
		return wrapperspb.String(intline.Format(r.(*store.Result).Sorted)), nil
	}
	sorted := sort.Sort(seq)
	if err := srv.results.Add(&store.Result{Input: key, Sorted: sorted}); err != nil {
		// Either a concurrent request stored it first or the service is stopping
		glog.V(6).Infof("Sort result for %s was not cached: %+v", key, err)
	}

	return wrapperspb.String(intline.Format(sorted)), nil
}
