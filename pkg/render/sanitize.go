package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	layoutPolicyOnce sync.Once
	layoutPolicy     *bluemonday.Policy
)

// LayoutPolicy returns a shared policy for layout fragments: user generated
// content markup plus the class, id and data attributes templates tend to
// carry. Scripts, event handlers and inline styles are removed.
func LayoutPolicy() *bluemonday.Policy {
	layoutPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("article", "section", "header", "footer", "aside", "nav", "main", "figure", "figcaption", "time")
		policy.AllowAttrs("class", "id", "role", "aria-label", "aria-hidden").Globally()
		policy.AllowDataAttributes()
		policy.AllowAttrs("datetime").OnElements("time")
		layoutPolicy = policy
	})
	return layoutPolicy
}
