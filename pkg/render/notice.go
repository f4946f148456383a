package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	noticePolicyOnce sync.Once
	noticePolicy     *bluemonday.Policy
)

// SanitizeNotice strips unsafe markup from operator supplied notice HTML,
// keeping basic inline formatting and links.
func SanitizeNotice(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(noticeSanitizer().Sanitize(trimmed))
}

func noticeSanitizer() *bluemonday.Policy {
	noticePolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		noticePolicy = policy
	})
	return noticePolicy
}
