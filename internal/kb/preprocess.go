package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Preprocessor turns the RadGraph and TCGA-Reports source corpora into the
// persisted triplet store.
type Preprocessor struct {
	RadGraphPath string
	TCGAPath     string
	OutputDir    string
}

type radGraphEntity struct {
	Label      string            `json:"label"`
	LabelType  string            `json:"label_type"`
	Attributes map[string]string `json:"attributes"`
}

type radGraphRelation struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Type    string `json:"type"`
}

type radGraphReport struct {
	Entities  map[string]radGraphEntity `json:"entities"`
	Relations []radGraphRelation        `json:"relations"`
}

type tcgaFinding struct {
	Entity     string            `json:"entity"`
	Attributes map[string]string `json:"attributes"`
}

type tcgaReport struct {
	Findings map[string][]tcgaFinding `json:"findings"`
}

// Run processes both corpora and persists the resulting store. It returns the
// metadata written alongside the artifacts.
func (p *Preprocessor) Run() (Metadata, error) {
	radTriplets, err := p.processRadGraph()
	if err != nil {
		return Metadata{}, fmt.Errorf("process radgraph: %w", err)
	}

	tcgaTriplets, err := p.processTCGA()
	if err != nil {
		return Metadata{}, fmt.Errorf("process tcga reports: %w", err)
	}

	all := append(radTriplets, tcgaTriplets...)
	store := NewStore(all)
	meta := Metadata{
		TotalTriplets:    len(all),
		RadgraphTriplets: len(radTriplets),
		TcgaTriplets:     len(tcgaTriplets),
		UniqueEntities:   len(store.Entities()),
	}

	if err := Save(p.OutputDir, store, meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// processRadGraph emits relation triplets between "label:type" composite
// entities plus has_<attr> attribute triplets.
func (p *Preprocessor) processRadGraph() ([]Triplet, error) {
	data, err := os.ReadFile(p.RadGraphPath)
	if err != nil {
		return nil, err
	}
	var reports map[string]radGraphReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.RadGraphPath, err)
	}

	// Report order is made deterministic; JSON object keys carry no order.
	reportIDs := make([]string, 0, len(reports))
	for id := range reports {
		reportIDs = append(reportIDs, id)
	}
	sort.Strings(reportIDs)

	var triplets []Triplet
	for _, id := range reportIDs {
		report := reports[id]

		for _, rel := range report.Relations {
			subj, okS := report.Entities[rel.Subject]
			obj, okO := report.Entities[rel.Object]
			if !okS || !okO {
				continue
			}
			triplets = append(triplets, Triplet{
				Subject:   compositeEntity(subj),
				Predicate: rel.Type,
				Object:    compositeEntity(obj),
			})
		}

		entityIDs := make([]string, 0, len(report.Entities))
		for eid := range report.Entities {
			entityIDs = append(entityIDs, eid)
		}
		sort.Strings(entityIDs)
		for _, eid := range entityIDs {
			ent := report.Entities[eid]
			triplets = append(triplets, attributeTriplets(compositeEntity(ent), ent.Attributes)...)
		}
	}
	return triplets, nil
}

// processTCGA emits located_in triplets from findings to organs plus
// has_<attr> attribute triplets.
func (p *Preprocessor) processTCGA() ([]Triplet, error) {
	data, err := os.ReadFile(p.TCGAPath)
	if err != nil {
		return nil, err
	}
	var reports []tcgaReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.TCGAPath, err)
	}

	var triplets []Triplet
	for _, report := range reports {
		organs := make([]string, 0, len(report.Findings))
		for organ := range report.Findings {
			organs = append(organs, organ)
		}
		sort.Strings(organs)

		for _, organ := range organs {
			for _, finding := range report.Findings[organ] {
				if finding.Entity == "" {
					continue
				}
				if organ != "" {
					triplets = append(triplets, Triplet{
						Subject:   finding.Entity,
						Predicate: "located_in",
						Object:    organ,
					})
				}
				triplets = append(triplets, attributeTriplets(finding.Entity, finding.Attributes)...)
			}
		}
	}
	return triplets, nil
}

func compositeEntity(e radGraphEntity) string {
	return fmt.Sprintf("%s:%s", e.Label, e.LabelType)
}

func attributeTriplets(entity string, attrs map[string]string) []Triplet {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Triplet, 0, len(keys))
	for _, k := range keys {
		out = append(out, Triplet{
			Subject:   entity,
			Predicate: "has_" + k,
			Object:    attrs[k],
		})
	}
	return out
}
