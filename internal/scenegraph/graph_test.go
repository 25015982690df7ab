package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGraph = `{
  "objects": [
    {"id": "o1", "type": "lung nodule", "attributes": {"size": "2cm"}},
    {"id": "o2", "type": "right lung"}
  ],
  "relationships": [
    {"subject": "o1", "predicate": "located_in", "object": "o2"}
  ],
  "conditions": [
    {"id": "c1", "type": "malignancy", "description": "suspected tumor"}
  ],
  "question_focus": ["o1", "c1"]
}`

func TestParseTrimsSurroundingProse(t *testing.T) {
	text := "Here is the scene graph:\n```json\n" + validGraph + "\n```\nDone."

	g, err := Parse(text)
	require.NoError(t, err)
	assert.Len(t, g.Objects, 2)
	assert.Equal(t, "lung nodule", g.Objects[0].Type)
	assert.Equal(t, []string{"o1", "c1"}, g.QuestionFocus)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("not a scene graph at all")
	assert.Error(t, err)
}

func TestObjectType(t *testing.T) {
	g, err := Parse(validGraph)
	require.NoError(t, err)

	typ, ok := g.ObjectType("o2")
	assert.True(t, ok)
	assert.Equal(t, "right lung", typ)

	_, ok = g.ObjectType("missing")
	assert.False(t, ok)
}

func TestValidateWellFormed(t *testing.T) {
	res := Validate(validGraph)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateDanglingRelationship(t *testing.T) {
	text := `{
	  "objects": [{"id": "o1", "type": "nodule"}],
	  "relationships": [{"subject": "o1", "predicate": "in", "object": "o9"}]
	}`

	res := Validate(text)
	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "o9")
}

func TestValidateUnresolvedFocusIsWarning(t *testing.T) {
	text := `{
	  "objects": [{"id": "o1", "type": "nodule"}],
	  "question_focus": ["ghost"]
	}`

	res := Validate(text)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "ghost")
}

func TestValidateRelationshipLabelAsFocus(t *testing.T) {
	text := `{
	  "objects": [{"id": "o1", "type": "nodule"}, {"id": "o2", "type": "lung"}],
	  "relationships": [{"subject": "o1", "predicate": "located_in", "object": "o2"}],
	  "question_focus": ["nodule-located_in-lung"]
	}`

	res := Validate(text)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Warnings)
}

func TestValidateUnparseableText(t *testing.T) {
	res := Validate("garbage")
	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Errors)
}
