package goredis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/artsearch/internal/db"
)

// Search runs FT.SEARCH and parses the RESP2 reply.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResult, error) {
	args, err := req.Args()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrQueryRejected, err)}
	}

	reply, err := s.rdb.Do(ctx, toArgs("FT.SEARCH", args)...).Slice()
	if err != nil {
		return nil, classifySearchErr(err)
	}
	return parseSearchReply(reply)
}

func classifySearchErr(err error) error {
	if isServerErr(err, unknownIndexMessages...) {
		return db.ErrIndexNotFound
	}
	if rerr, ok := serverError(err); ok && db.IsQueryRejection(rerr.Error()) {
		return &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrQueryRejected, err)}
	}
	return &db.Error{Op: db.OpSearch, Err: err}
}

// parseSearchReply decodes [total, key1, [f, v, ...], key2, ...].
func parseSearchReply(reply []any) (*db.SearchResult, error) {
	if len(reply) == 0 {
		return &db.SearchResult{}, nil
	}

	total, ok := reply[0].(int64)
	if !ok {
		return nil, fmt.Errorf("parse total: unexpected %T", reply[0])
	}

	res := &db.SearchResult{Total: int(total)}
	for i := 1; i+1 < len(reply); i += 2 {
		key, ok := reply[i].(string)
		if !ok {
			continue
		}
		pairs, ok := reply[i+1].([]any)
		if !ok {
			continue
		}
		res.Entries = append(res.Entries, db.SearchEntry{Key: key, Fields: pairsToMap(pairs)})
	}
	return res, nil
}

func pairsToMap(pairs []any) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for j := 0; j+1 < len(pairs); j += 2 {
		name, ok := pairs[j].(string)
		if !ok {
			continue
		}
		m[name] = stringify(pairs[j+1])
	}
	return m
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
