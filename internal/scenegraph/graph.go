package scenegraph

import (
	"fmt"

	"github.com/medgraphlab/smra/internal/common"
)

// Object is a medical entity identified in an image.
type Object struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Relationship links two objects by their ids.
type Relationship struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Condition is a medical condition or diagnosis tied to the scene.
type Condition struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Graph is the scene graph wire format exchanged with the model. Ids are
// unique within a single graph only.
type Graph struct {
	Objects       []Object       `json:"objects"`
	Relationships []Relationship `json:"relationships"`
	Conditions    []Condition    `json:"conditions"`
	QuestionFocus []string       `json:"question_focus"`
}

// Parse extracts a scene graph from model output, tolerating prose or
// markdown fences around the JSON object.
func Parse(text string) (*Graph, error) {
	g, err := common.ParseJSON[Graph](text)
	if err != nil {
		return nil, fmt.Errorf("parse scene graph: %w", err)
	}
	return &g, nil
}

// Label is the synthetic identity of a relationship, built from the resolved
// endpoint types.
func Label(subjectType, predicate, objectType string) string {
	return fmt.Sprintf("%s-%s-%s", subjectType, predicate, objectType)
}

// ObjectType resolves an object id to its type. The second return reports
// whether the id is declared.
func (g *Graph) ObjectType(id string) (string, bool) {
	for _, o := range g.Objects {
		if o.ID == id {
			return o.Type, true
		}
	}
	return "", false
}
