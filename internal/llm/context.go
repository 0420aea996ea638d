package llm

import "context"

type purposeKey struct{}

// WithPurpose tags requests made under ctx with what they are for, such as
// "explain". The logging decorator records the tag.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if purpose, ok := ctx.Value(purposeKey{}).(string); ok && purpose != "" {
		return purpose
	}
	return "unknown"
}
