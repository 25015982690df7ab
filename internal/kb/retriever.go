package kb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/medgraphlab/smra/internal/scenegraph"
)

const (
	similarEntityCount   = 3
	maxRelationshipFacts = 5
)

// Retriever answers "what do we know about X" queries against the store,
// falling back to approximate matches when an entity is unseen verbatim.
type Retriever struct {
	store *Store
	vec   *Vectorizer
}

// NewRetriever builds the similarity model over the store's entity keys.
func NewRetriever(store *Store) *Retriever {
	return &Retriever{
		store: store,
		vec:   NewVectorizer(store.Entities()),
	}
}

// FindSimilarEntities returns up to k indexed entities approximately matching
// the query, highest similarity first. No match is not an error.
func (r *Retriever) FindSimilarEntities(query string, k int) []Match {
	return r.vec.TopK(query, k)
}

// RetrieveEntityKnowledge gathers up to maxTriplets facts about an entity:
// half the budget from the exact index bucket, the rest split evenly across
// the top similar entities.
func (r *Retriever) RetrieveEntityKnowledge(entity string, maxTriplets int) []Triplet {
	if maxTriplets <= 0 {
		return nil
	}

	var out []Triplet
	if bucket := r.store.Bucket(entity); len(bucket) > 0 {
		out = append(out, bucket[:min(len(bucket), maxTriplets/2)]...)
	}

	similar := r.vec.TopK(entity, similarEntityCount)
	if remaining := maxTriplets - len(out); remaining > 0 && len(similar) > 0 {
		// Every similar entity gets the same share of what the exact
		// bucket left over.
		share := remaining / len(similar)
		for _, m := range similar {
			bucket := r.store.Bucket(m.Entity)
			out = append(out, bucket[:min(len(bucket), share)]...)
		}
	}

	if len(out) > maxTriplets {
		out = out[:maxTriplets]
	}
	return out
}

// RetrieveRelationshipKnowledge scans the full store for triplets whose
// predicate matches the query predicate as a case-insensitive substring in
// either direction, and whose subject or object likewise matches. At most
// five facts are returned, in store order. The scan is linear; the store is
// small and bounded, but callers must not assume sub-linear latency.
func (r *Retriever) RetrieveRelationshipKnowledge(subject, predicate, object string) []Triplet {
	subject = strings.ToLower(subject)
	predicate = strings.ToLower(predicate)
	object = strings.ToLower(object)

	var out []Triplet
	for _, t := range r.store.Triplets() {
		ts := strings.ToLower(t.Subject)
		tp := strings.ToLower(t.Predicate)
		to := strings.ToLower(t.Object)

		if !eitherContains(predicate, tp) {
			continue
		}
		if eitherContains(subject, ts) || eitherContains(object, to) {
			out = append(out, t)
			if len(out) == maxRelationshipFacts {
				break
			}
		}
	}
	return out
}

func eitherContains(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ExtractEntityMentions flattens the entity mentions of a scene graph: every
// object type plus its type:attribute:value composites, and every condition
// type and description.
func ExtractEntityMentions(g *scenegraph.Graph) []string {
	var mentions []string
	for _, o := range g.Objects {
		if o.Type != "" {
			mentions = append(mentions, o.Type)
		}
		keys := make([]string, 0, len(o.Attributes))
		for k := range o.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			typ := o.Type
			if typ == "" {
				typ = "entity"
			}
			mentions = append(mentions, fmt.Sprintf("%s:%s:%s", typ, k, o.Attributes[k]))
		}
	}
	for _, c := range g.Conditions {
		if c.Type != "" {
			mentions = append(mentions, c.Type)
		}
		if c.Description != "" {
			mentions = append(mentions, c.Description)
		}
	}
	return mentions
}

// RetrieveForSceneGraph aggregates knowledge for every entity mention and
// every resolvable relationship of a scene graph. Keys appearing more than
// once merge their triplet lists; empty results are omitted.
func (r *Retriever) RetrieveForSceneGraph(g *scenegraph.Graph, maxPerEntity int) *Knowledge {
	k := NewKnowledge()

	for _, mention := range ExtractEntityMentions(g) {
		k.Add(mention, r.RetrieveEntityKnowledge(mention, maxPerEntity))
	}

	for _, rel := range g.Relationships {
		subjectType, ok := g.ObjectType(rel.Subject)
		if !ok {
			continue
		}
		objectType, ok := g.ObjectType(rel.Object)
		if !ok {
			continue
		}
		facts := r.RetrieveRelationshipKnowledge(subjectType, rel.Predicate, objectType)
		k.Add(scenegraph.Label(subjectType, rel.Predicate, objectType), facts)
	}

	return k
}

// Knowledge is an insertion-ordered mapping from entity mention or
// relationship label to retrieved triplets.
type Knowledge struct {
	keys    []string
	entries map[string][]Triplet
}

func NewKnowledge() *Knowledge {
	return &Knowledge{entries: make(map[string][]Triplet)}
}

// Add merges triplets under a key, preserving first-insertion key order.
// Empty triplet lists are dropped.
func (k *Knowledge) Add(key string, triplets []Triplet) {
	if len(triplets) == 0 {
		return
	}
	if _, ok := k.entries[key]; !ok {
		k.keys = append(k.keys, key)
	}
	k.entries[key] = append(k.entries[key], triplets...)
}

// Keys returns the keys in insertion order.
func (k *Knowledge) Keys() []string {
	return k.keys
}

// Get returns the triplets stored under a key.
func (k *Knowledge) Get(key string) []Triplet {
	return k.entries[key]
}

// Len is the number of distinct keys.
func (k *Knowledge) Len() int {
	return len(k.keys)
}

// Format renders the knowledge as a deterministic human-readable block, one
// section per key in insertion order.
func (k *Knowledge) Format() string {
	var b strings.Builder
	for _, key := range k.keys {
		fmt.Fprintf(&b, "\n**Knowledge about '%s':**\n", key)
		for _, t := range k.entries[key] {
			fmt.Fprintf(&b, "- %s %s %s\n", t.Subject, t.Predicate, t.Object)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
