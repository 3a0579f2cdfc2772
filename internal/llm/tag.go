package llm

import "context"

// Tag labels a request in the event log. SessionID is the interview UUID
// and Task the catalog task a suggestion was drafted for.
type Tag struct {
	Purpose   string
	SessionID string
	Task      string
}

// untagged is recorded for requests made without a Tag.
const untagged = "untagged"

type tagKey struct{}

// WithTag attaches tag to ctx for the logging decorator.
func WithTag(ctx context.Context, tag Tag) context.Context {
	return context.WithValue(ctx, tagKey{}, tag)
}

// TagFrom returns the Tag attached to ctx. Purpose is "untagged" when
// none was set.
func TagFrom(ctx context.Context) Tag {
	tag, _ := ctx.Value(tagKey{}).(Tag)
	if tag.Purpose == "" {
		tag.Purpose = untagged
	}
	return tag
}
