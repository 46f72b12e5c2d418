package news

import "strings"

// MaxLatest caps how many items the feed returns.
const MaxLatest = 10

// Item is one document of the news collection. The store id only orders
// the feed and is not serialized to clients.
type Item struct {
	Title   string `bson:"title" json:"title"`
	Summary string `bson:"summary" json:"summary"`
	Tag     string `bson:"tag" json:"tag"`
	Date    string `bson:"date" json:"date"`
}

// IsLink reports whether the summary is a URL the title should link to.
func (i Item) IsLink() bool {
	return strings.HasPrefix(i.Summary, "http")
}
