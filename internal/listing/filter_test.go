package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesSearchCaseInsensitive(t *testing.T) {
	f := FromQuery("  acme ", "")
	assert.True(t, f.MatchesSearch("ACME Corp", "other"))
	assert.True(t, f.MatchesSearch("x", "East Acme Branch"))
	assert.False(t, f.MatchesSearch("Globex", "Initech"))
}

func TestEmptySearchMatchesEverything(t *testing.T) {
	f := FromQuery("", "PENDING")
	assert.True(t, f.MatchesSearch())
	assert.True(t, f.MatchesSearch(""))
}

func TestMatchesStatusEquality(t *testing.T) {
	f := FromQuery("", "pending")
	assert.True(t, f.MatchesStatus("PENDING"))
	assert.False(t, f.MatchesStatus("APPROVED"))
	assert.True(t, FromQuery("", "").MatchesStatus("ANYTHING"))
}

func TestApplyPreservesOrder(t *testing.T) {
	items := []int{5, 2, 9, 4}
	kept := Apply(items, func(v int) bool { return v > 3 })
	assert.Equal(t, []int{5, 9, 4}, kept)
	assert.Equal(t, []int{5, 2, 9, 4}, items)
}
