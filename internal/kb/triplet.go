package kb

// Triplet is a single (subject, predicate, object) fact. Triplets are
// immutable once loaded; duplicates are allowed.
type Triplet struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Store holds the full triplet collection plus the entity index built over it.
// Both are read-only after construction.
type Store struct {
	triplets []Triplet
	index    map[string][]Triplet
	entities []string // index keys in first-seen order
}

// NewStore builds the entity index from the given triplets. Every triplet is
// indexed under its subject and its object, in store order.
func NewStore(triplets []Triplet) *Store {
	s := &Store{
		triplets: triplets,
		index:    make(map[string][]Triplet),
	}
	for _, t := range triplets {
		s.add(t.Subject, t)
		s.add(t.Object, t)
	}
	return s
}

func (s *Store) add(entity string, t Triplet) {
	if _, ok := s.index[entity]; !ok {
		s.entities = append(s.entities, entity)
	}
	s.index[entity] = append(s.index[entity], t)
}

// Triplets returns the underlying collection in load order.
func (s *Store) Triplets() []Triplet {
	return s.triplets
}

// Bucket returns the indexed triplets for an entity, exact match only.
func (s *Store) Bucket(entity string) []Triplet {
	return s.index[entity]
}

// Entities returns the index keys in construction order.
func (s *Store) Entities() []string {
	return s.entities
}

// Index exposes the raw entity index for persistence.
func (s *Store) Index() map[string][]Triplet {
	return s.index
}

// Len is the number of triplets in the store.
func (s *Store) Len() int {
	return len(s.triplets)
}
