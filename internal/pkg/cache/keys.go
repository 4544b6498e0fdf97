package cache

import (
	"crypto/md5"
	"encoding/hex"
)

// Key namespaces. Search and fetch share one cache instance; the prefix keeps
// the two keyspaces from colliding.
const (
	searchPrefix = "search:"
	fetchPrefix  = "fetch:"
)

func hashKey(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// SearchKey derives the cache key for a search query.
func SearchKey(query string) string {
	return searchPrefix + hashKey(query)
}

// FetchKey derives the cache key for a fetched URL.
func FetchKey(url string) string {
	return fetchPrefix + hashKey(url)
}
