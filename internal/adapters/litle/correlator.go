package litle

// correlate reorders unordered batch responses into the original
// submission order by replaying the assembly's correlation-id sequence.
// A nil entry marks a submitted id with no matching response (a
// correlation fault the caller must see). Response ids that were never
// submitted are dropped. With no submitted sequence (the
// request-for-response flow has no local submission context) responses
// come back in parser encounter order, best-effort.
func correlate(submittedIDs []string, responses []*RawResponse) []*RawResponse {
	if len(submittedIDs) == 0 {
		return responses
	}
	byID := make(map[string]*RawResponse, len(responses))
	for _, r := range responses {
		byID[r.CorrelationID] = r
	}
	ordered := make([]*RawResponse, len(submittedIDs))
	for i, id := range submittedIDs {
		ordered[i] = byID[id]
	}
	return ordered
}
