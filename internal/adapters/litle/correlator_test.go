package litle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawWithID(id string) *RawResponse {
	return &RawResponse{
		Kind:          KindAuthorization,
		CorrelationID: id,
		Fields:        map[string]string{"litle_txn_id": "txn-" + id},
	}
}

func TestCorrelateReordersToSubmissionOrder(t *testing.T) {
	submitted := []string{"1", "2", "3"}
	responses := []*RawResponse{rawWithID("2"), rawWithID("3"), rawWithID("1")}

	ordered := correlate(submitted, responses)
	require.Len(t, ordered, 3)
	for i, id := range submitted {
		assert.Equal(t, id, ordered[i].CorrelationID)
	}
}

func TestCorrelateAnyPermutation(t *testing.T) {
	submitted := make([]string, 20)
	responses := make([]*RawResponse, 20)
	for i := range submitted {
		id := string(rune('a' + i))
		submitted[i] = id
		responses[i] = rawWithID(id)
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		rng.Shuffle(len(responses), func(i, j int) {
			responses[i], responses[j] = responses[j], responses[i]
		})
		ordered := correlate(submitted, responses)
		require.Len(t, ordered, len(submitted))
		for i, id := range submitted {
			require.NotNil(t, ordered[i])
			assert.Equal(t, id, ordered[i].CorrelationID)
		}
	}
}

func TestCorrelateMissingResponseYieldsNil(t *testing.T) {
	submitted := []string{"1", "2", "3"}
	responses := []*RawResponse{rawWithID("3"), rawWithID("1")}

	ordered := correlate(submitted, responses)
	require.Len(t, ordered, 3)
	assert.Equal(t, "1", ordered[0].CorrelationID)
	assert.Nil(t, ordered[1])
	assert.Equal(t, "3", ordered[2].CorrelationID)
}

func TestCorrelateDropsUnknownResponses(t *testing.T) {
	submitted := []string{"1"}
	responses := []*RawResponse{rawWithID("stray"), rawWithID("1")}

	ordered := correlate(submitted, responses)
	require.Len(t, ordered, 1)
	assert.Equal(t, "1", ordered[0].CorrelationID)
}

func TestCorrelateEmptySubmissionKeepsEncounterOrder(t *testing.T) {
	responses := []*RawResponse{rawWithID("9"), rawWithID("4")}

	ordered := correlate(nil, responses)
	require.Len(t, ordered, 2)
	assert.Equal(t, "9", ordered[0].CorrelationID)
	assert.Equal(t, "4", ordered[1].CorrelationID)
}
