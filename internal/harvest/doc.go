// Package harvest coordinates a full metadata harvest run: session
// warm-up, paginated ticker discovery across regions, chunked batch
// quote retrieval, and per-ticker outcome accounting.
package harvest
