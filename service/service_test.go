package service

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func setup(t *testing.T, cacheSize int) (*grpcSrv, *Client) {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := NewWithListener(lis, cacheSize)
	t.Cleanup(srv.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(ctx, "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial sort service with error: %+v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return srv.(*grpcSrv), NewClient(conn)
}

func TestSort(t *testing.T) {
	_, client := setup(t, 0)
	tests := []struct {
		name   string
		input  string
		expect string
		code   codes.Code
	}{
		{
			name:   "duplicates",
			input:  "0,5,3,2,2",
			expect: "0,2,2,3,5",
			code:   codes.OK,
		},
		{
			name:   "negative values with spaces",
			input:  "-2, -5, -45",
			expect: "-45,-5,-2",
			code:   codes.OK,
		},
		{
			name:  "non numeric token",
			input: "1,a,2",
			code:  codes.InvalidArgument,
		},
		{
			name:  "empty line",
			input: "",
			code:  codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			got, err := client.Sort(ctx, tt.input)
			if code := status.Code(err); code != tt.code {
				t.Fatalf("expected code %s, got %s with error: %+v", tt.code, code, err)
			}
			if diff := deep.Equal(tt.expect, got); diff != nil {
				t.Errorf("%+v", diff)
			}
		})
	}
}

func TestSortCache(t *testing.T) {
	srv, client := setup(t, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, line := range []string{"3,1,2", " 3, 1, 2", "3,1,2"} {
		got, err := client.Sort(ctx, line)
		if err != nil {
			t.Fatalf("supposed to succeed but fail with error: %+v", err)
		}
		if got != "1,2,3" {
			t.Fatalf("expected 1,2,3, got %s", got)
		}
	}
	if l := srv.results.Len(); l != 1 {
		t.Fatalf("cache supposed to have 1 item, has %d", l)
	}
	if _, err := client.Sort(ctx, "2,1"); err != nil {
		t.Fatalf("supposed to succeed but fail with error: %+v", err)
	}
	if l := srv.results.Len(); l != 2 {
		t.Fatalf("cache supposed to have 2 items, has %d", l)
	}
}

func TestSortCacheCapacity(t *testing.T) {
	srv, client := setup(t, 16)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i := 0; i < 200; i++ {
		line := fmt.Sprintf("%d,1", i)
		if _, err := client.Sort(ctx, line); err != nil {
			t.Fatalf("supposed to succeed but fail with error: %+v", err)
		}
		if l := srv.results.Len(); l > 16 {
			t.Fatalf("cache supposed to have at most 16 items, has %d", l)
		}
	}
	if srv.results.Get("199,1") == nil {
		t.Fatalf("latest result supposed to be cached")
	}
	if srv.results.Get("0,1") != nil {
		t.Fatalf("oldest result supposed to be evicted")
	}
}

func TestSortLongInputNotCached(t *testing.T) {
	srv, client := setup(t, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	values := make([]string, MaxCachedKeyLen)
	for i := range values {
		values[i] = "7"
	}
	got, err := client.Sort(ctx, strings.Join(values, ","))
	if err != nil {
		t.Fatalf("supposed to succeed but fail with error: %+v", err)
	}
	if got != strings.Join(values, ",") {
		t.Fatalf("unexpected result for a long input")
	}
	if l := srv.results.Len(); l != 0 {
		t.Fatalf("long input supposed to bypass the cache, cache has %d items", l)
	}
}

func TestSortAfterStop(t *testing.T) {
	srv, _ := setup(t, 0)
	srv.results.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		got, err := srv.Sort(context.Background(), wrapperspb.String("2,1"))
		if err != nil {
			t.Errorf("supposed to succeed but fail with error: %+v", err)
			return
		}
		if got.GetValue() != "1,2" {
			t.Errorf("expected 1,2, got %s", got.GetValue())
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("request handled after the cache stopped blocked")
	}
}
