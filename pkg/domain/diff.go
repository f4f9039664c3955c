package domain

// SceneDiff represents the changes between two scene snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SceneDiff struct {
	// DocumentID is always present to identify the target.
	DocumentID string `json:"document_id"`

	// Added holds shapes present only in the new scene.
	Added []Shape `json:"added,omitempty"`
	// Changed holds the new value of shapes whose fields differ.
	Changed []Shape `json:"changed,omitempty"`
	// Removed holds ids present only in the old scene.
	Removed []string `json:"removed,omitempty"`

	// Selection is set when the selection changed.
	Selection *[]string `json:"selection,omitempty"`
}

// Diff calculates the difference between oldScene and newScene.
// If oldScene is nil, it returns a diff representing the entire newScene (initial load).
func Diff(oldScene, newScene *Scene) *SceneDiff {
	if newScene == nil {
		return nil
	}

	diff := &SceneDiff{DocumentID: newScene.ID}

	old := map[string]Shape{}
	if oldScene != nil {
		for _, sh := range oldScene.Shapes {
			old[sh.ID] = sh
		}
	}

	seen := make(map[string]bool, len(newScene.Shapes))
	for _, sh := range newScene.Shapes {
		seen[sh.ID] = true
		prev, ok := old[sh.ID]
		switch {
		case !ok:
			diff.Added = append(diff.Added, sh)
		case prev != sh:
			diff.Changed = append(diff.Changed, sh)
		}
	}

	if oldScene != nil {
		for _, sh := range oldScene.Shapes {
			if !seen[sh.ID] {
				diff.Removed = append(diff.Removed, sh.ID)
			}
		}
	}

	if oldScene == nil || !sameIDs(oldScene.Selection, newScene.Selection) {
		sel := append([]string{}, newScene.Selection...)
		diff.Selection = &sel
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SceneDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Changed) == 0 &&
		len(d.Removed) == 0 &&
		d.Selection == nil
}
