package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTriplets() []Triplet {
	return []Triplet{
		{"lung nodule", "located_in", "right lung"},
		{"lung nodule", "has_size", "2cm"},
		{"pleural effusion", "located_in", "left lung"},
		{"lung nodule", "located_in", "right lung"}, // duplicates are allowed
	}
}

func TestEntityIndexBidirectional(t *testing.T) {
	store := NewStore(testTriplets())

	// Every triplet must appear under both its subject and its object.
	for _, tr := range store.Triplets() {
		assert.Contains(t, store.Bucket(tr.Subject), tr)
		assert.Contains(t, store.Bucket(tr.Object), tr)
	}
}

func TestEntityIndexPreservesOrder(t *testing.T) {
	store := NewStore(testTriplets())

	bucket := store.Bucket("lung nodule")
	assert.Len(t, bucket, 3)
	assert.Equal(t, "located_in", bucket[0].Predicate)
	assert.Equal(t, "has_size", bucket[1].Predicate)
	assert.Equal(t, "located_in", bucket[2].Predicate)

	// Keys are recorded in first-seen order.
	assert.Equal(t,
		[]string{"lung nodule", "right lung", "2cm", "pleural effusion", "left lung"},
		store.Entities())
}

func TestBucketMissingEntity(t *testing.T) {
	store := NewStore(testTriplets())
	assert.Empty(t, store.Bucket("no such entity"))
}
