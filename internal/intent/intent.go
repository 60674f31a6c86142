// Package intent classifies an utterance into a (query type, topic) pair
// using ordered keyword rules. Matching is substring containment, not
// word-boundary tokenization; that quirk is load-bearing and pinned by tests.
package intent

import "strings"

// Query types.
const (
	QueryFarewell      = "farewell"
	QueryComplaint     = "complaint"
	QueryInformational = "informational"
)

// Exact-match goodbye tokens, compared against the whole trimmed message.
var farewellExact = map[string]struct{}{
	"bye":         {},
	"goodbye":     {},
	"thanks":      {},
	"thank you":   {},
	"done":        {},
	"ok thanks":   {},
	"okay thanks": {},
	"no":          {},
}

// Goodbye phrases, matched by containment only when the trimmed message has
// eight words or fewer.
var farewellPhrases = []string{
	"no thanks",
	"no thank you",
	"that's all",
	"thats all",
	"that is all",
	"nothing else",
	"have a good day",
	"have a nice day",
	"i'm done",
	"im done",
	"good bye",
}

type complaintPattern struct {
	topic    string
	keywords []string
}

// Priority order matters: the first satisfied pattern wins.
var complaintPatterns = []complaintPattern{
	{"double_deduction", []string{"double", "twice", "charged twice"}},
	{"incorrect_billing", []string{"incorrect", "wrong", "error", "mistake"}},
	{"unauthorized_charge", []string{"unauthorized", "fraud"}},
	{"missing_refund", []string{"refund", "not received", "missing refund"}},
}

type informationalPattern struct {
	topic    string
	required []string
	anyOf    []string
}

var informationalPatterns = []informationalPattern{
	{"bill_generation", []string{"bill"}, []string{"generat", "when", "date"}},
	{"payment_deduction", []string{"payment"}, []string{"deduct", "when"}},
	{"outstanding_balance", nil, []string{"balance", "outstanding", "owe"}},
	{"due_date", []string{"due"}, []string{"date", "when"}},
}

// Classify returns the (query type, topic) for a message. Farewell pre-empts
// complaint, complaint pre-empts informational; within each tier the first
// matching topic wins.
func Classify(message string) (string, string) {
	lower := strings.ToLower(strings.TrimSpace(message))
	trimmed := strings.TrimRight(lower, ".!?,;:")

	if isFarewell(trimmed) {
		return QueryFarewell, QueryFarewell
	}

	for _, p := range complaintPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				return QueryComplaint, p.topic
			}
		}
	}

	for _, p := range informationalPatterns {
		if containsAll(lower, p.required) && containsAny(lower, p.anyOf) {
			return QueryInformational, p.topic
		}
	}

	return QueryInformational, "general"
}

func isFarewell(trimmed string) bool {
	if _, ok := farewellExact[trimmed]; ok {
		return true
	}
	if len(strings.Fields(trimmed)) > 8 {
		return false
	}
	for _, phrase := range farewellPhrases {
		if strings.Contains(trimmed, phrase) {
			return true
		}
	}
	return false
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// TopicLabel renders an underscore topic id as a title-cased human label,
// e.g. "double_deduction" -> "Double Deduction".
func TopicLabel(topic string) string {
	parts := strings.Split(topic, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
