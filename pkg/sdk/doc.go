// Package artsearch embeds the article search service in a Go program.
//
// The client talks to Redis Stack (through rueidis or go-redis) or to an
// embedded bbolt+bleve store, rebuilds the article index and runs title
// searches with an optional price window.
//
//	client, _ := artsearch.New(ctx, artsearch.WithEmbedded("data/articles.db"))
//	defer client.Close()
//	_ = client.EnsureIndex(ctx)
//	_ = client.SaveArticles(ctx, nil, []artsearch.Article{{ID: "1", Title: "Alpha", Price: 9.99}})
//	res, _ := client.SearchArticles(ctx, "Alpha", 0, 20)
//
// Price bounds use -1 for "unset"; a window is applied only when both
// bounds are set.
package artsearch
