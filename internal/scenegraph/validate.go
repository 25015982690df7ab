package scenegraph

import "fmt"

// ValidationResult reports structural problems with a scene graph. Errors
// make the graph unusable; warnings do not.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Validate checks structural well-formedness only: the text must parse into
// the scene graph shape, relationship endpoints must resolve to declared
// object ids, and question_focus entries must resolve to a declared object,
// relationship or condition id. Unresolved focus ids are warnings; everything
// else is an error.
func Validate(text string) ValidationResult {
	res := ValidationResult{}

	g, err := Parse(text)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	objectIDs := make(map[string]bool, len(g.Objects))
	for _, o := range g.Objects {
		objectIDs[o.ID] = true
	}

	known := make(map[string]bool)
	for id := range objectIDs {
		known[id] = true
	}
	for _, c := range g.Conditions {
		known[c.ID] = true
	}

	for i, r := range g.Relationships {
		if !objectIDs[r.Subject] {
			res.Errors = append(res.Errors,
				fmt.Sprintf("relationship %d: subject %q does not resolve to an object id", i, r.Subject))
		}
		if !objectIDs[r.Object] {
			res.Errors = append(res.Errors,
				fmt.Sprintf("relationship %d: object %q does not resolve to an object id", i, r.Object))
		}
		// Relationships have no declared id; their synthetic label is a
		// valid focus target.
		if st, ok := g.ObjectType(r.Subject); ok {
			if ot, ok := g.ObjectType(r.Object); ok {
				known[Label(st, r.Predicate, ot)] = true
			}
		}
	}

	for _, focus := range g.QuestionFocus {
		if !known[focus] {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("question_focus %q does not resolve to a declared id", focus))
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
