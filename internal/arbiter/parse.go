package arbiter

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when a service payload cannot be interpreted as
// a decision, either as raw JSON or from inside a markdown code fence.
var ErrParseFailed = errors.New("unparseable decision payload")

var fenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

// payloadExcerptLimit bounds how much of a bad payload is logged.
const payloadExcerptLimit = 200

// decision mirrors the service's wire payload before validation.
type decision struct {
	AssignedDomainIDs []string   `json:"assigned_domain_ids"`
	Proposals         []Proposal `json:"proposals"`
	Rationale         string     `json:"rationale"`
	AgreementScore    float64    `json:"agreement_score"`
}

// parseDecision unmarshals a service payload, retrying with the contents of
// a markdown code fence when the payload is not bare JSON. Decision services
// backed by chat models routinely wrap their output that way.
func parseDecision(content string) (decision, error) {
	var d decision
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &d); err == nil {
		return d, nil
	}

	if m := fenceRegex.FindStringSubmatch(content); len(m) >= 2 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &d); err == nil {
			return d, nil
		}
	}

	return decision{}, fmt.Errorf("%w: %s", ErrParseFailed, excerpt(content))
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= payloadExcerptLimit {
		return s
	}
	return string(runes[:payloadExcerptLimit]) + "..."
}
