package goredis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kailas-cloud/artsearch/internal/db"
)

type fakeServerErr string

func (e fakeServerErr) Error() string { return string(e) }
func (fakeServerErr) RedisError()     {}

var _ redis.Error = fakeServerErr("")

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	s, err := NewStore(Config{Addrs: []string{"127.0.0.1:1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if err := s.WaitForReady(context.Background(), 250*time.Millisecond); err == nil {
		t.Fatal("expected timeout against a closed port")
	}
}

func TestParseSearchReply(t *testing.T) {
	reply := []any{
		int64(2),
		"Article:1", []any{"title", "How to cook pasta", "price", "12.5"},
		"Article:2", []any{"title", "How to teach", "price", int64(7)},
	}

	res, err := parseSearchReply(reply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || len(res.Entries) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Entries[0].Key != "Article:1" || res.Entries[0].Fields["price"] != "12.5" {
		t.Errorf("entry[0] = %+v", res.Entries[0])
	}
	if res.Entries[1].Fields["price"] != "7" {
		t.Errorf("entry[1] price = %q, want 7", res.Entries[1].Fields["price"])
	}
}

func TestParseSearchReply_Empty(t *testing.T) {
	res, err := parseSearchReply([]any{int64(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || len(res.Entries) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestParseSearchReply_BadTotal(t *testing.T) {
	if _, err := parseSearchReply([]any{"nope"}); err == nil {
		t.Fatal("expected error for non-integer total")
	}
}

func TestClassifySearchErr(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want func(error) bool
	}{
		{
			name: "unknown index",
			in:   fakeServerErr("Unknown Index name"),
			want: func(err error) bool { return errors.Is(err, db.ErrIndexNotFound) },
		},
		{
			name: "no such index",
			in:   fakeServerErr("article-idx: no such index"),
			want: func(err error) bool { return errors.Is(err, db.ErrIndexNotFound) },
		},
		{
			name: "syntax error",
			in:   fakeServerErr("Syntax error at offset 1"),
			want: func(err error) bool { return errors.Is(err, db.ErrQueryRejected) },
		},
		{
			name: "loading",
			in:   fakeServerErr("LOADING Redis is loading the dataset in memory"),
			want: isBackendFault,
		},
		{
			name: "busy",
			in:   fakeServerErr("BUSY Redis is busy running a script"),
			want: isBackendFault,
		},
		{
			name: "noauth",
			in:   fakeServerErr("NOAUTH Authentication required."),
			want: isBackendFault,
		},
		{
			name: "oom",
			in:   fakeServerErr("OOM command not allowed when used memory > 'maxmemory'."),
			want: isBackendFault,
		},
		{
			name: "search timeout",
			in:   fakeServerErr("Timeout limit was reached"),
			want: isBackendFault,
		},
		{
			name: "transport",
			in:   context.DeadlineExceeded,
			want: func(err error) bool {
				return errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, db.ErrQueryRejected)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifySearchErr(tt.in); !tt.want(got) {
				t.Errorf("classifySearchErr(%v) = %v", tt.in, got)
			}
		})
	}
}

func isBackendFault(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr) && !errors.Is(err, db.ErrQueryRejected) && !errors.Is(err, db.ErrIndexNotFound)
}

func TestSearch_InvalidRequest(t *testing.T) {
	s := &Store{}
	_, err := s.Search(context.Background(), &db.SearchRequest{Query: "x"})
	if !errors.Is(err, db.ErrQueryRejected) {
		t.Fatalf("expected ErrQueryRejected for missing index name, got %v", err)
	}
}

func TestServerError_IgnoresNil(t *testing.T) {
	if _, ok := serverError(redis.Nil); ok {
		t.Error("redis.Nil must not count as a server error")
	}
}

func TestToArgs(t *testing.T) {
	got := toArgs("FT.INFO", []string{"article-idx"})
	if len(got) != 2 || got[0] != "FT.INFO" || got[1] != "article-idx" {
		t.Errorf("toArgs = %v", got)
	}
}
