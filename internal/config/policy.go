package config

import (
	"fmt"
	"strings"
)

const (
	OOVPolicyUnknown = "unk"
	OOVPolicySubword = "subword"
)

// NormalizeOOVPolicy validates and canonicalizes an out-of-vocabulary
// policy name. An empty string is returned unchanged so the payload value
// stays in effect.
func NormalizeOOVPolicy(raw string) (string, error) {
	policy := strings.ToLower(strings.TrimSpace(raw))
	switch policy {
	case "", OOVPolicyUnknown, OOVPolicySubword:
		return policy, nil
	case "unknown":
		return OOVPolicyUnknown, nil
	default:
		return "", fmt.Errorf(
			"invalid oov policy %q (expected %s|%s)",
			raw,
			OOVPolicyUnknown,
			OOVPolicySubword,
		)
	}
}
