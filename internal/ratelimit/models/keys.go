package models

import "strings"

// KeyPrefix namespaces buckets by identifier kind.
type KeyPrefix string

const (
	KeyPrefixUser KeyPrefix = "user"
	KeyPrefixIP   KeyPrefix = "ip"
)

// RateLimitKey identifies one bucket, e.g. "ratelimit:user:<id>:read".
type RateLimitKey struct {
	prefix     KeyPrefix
	identifier string
	class      EndpointClass
}

func NewRateLimitKey(prefix KeyPrefix, identifier string, class EndpointClass) RateLimitKey {
	return RateLimitKey{prefix: prefix, identifier: SanitizeKeySegment(identifier), class: class}
}

func (k RateLimitKey) String() string {
	return "ratelimit:" + string(k.prefix) + ":" + k.identifier + ":" + string(k.class)
}

// SanitizeKeySegment escapes the ':' delimiter so an identifier cannot spill
// into an adjacent key segment. IPv6 addresses are affected too.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
