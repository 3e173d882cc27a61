package player

// MergeResult contains the outcome of merging player collections
type MergeResult struct {
	Players    []*Player
	Duplicates []string // IDs dropped because an earlier record won
}

// Merge combines two player collections. When both contain the same player ID
// the record from first is kept. Surviving records keep the concatenation
// order of the inputs.
func Merge(first, second []*Player) *MergeResult {
	return MergeAll(first, second)
}

// MergeAll combines any number of collections with the same first-seen-wins
// rule as Merge. Duplicates inside a single collection are removed as well.
func MergeAll(collections ...[]*Player) *MergeResult {
	total := 0
	for _, c := range collections {
		total += len(c)
	}

	result := &MergeResult{
		Players:    make([]*Player, 0, total),
		Duplicates: make([]string, 0),
	}

	seen := make(map[string]bool, total)
	for _, c := range collections {
		for _, p := range c {
			if p == nil {
				continue
			}
			if seen[p.ID] {
				result.Duplicates = append(result.Duplicates, p.ID)
				continue
			}
			seen[p.ID] = true
			result.Players = append(result.Players, p)
		}
	}

	return result
}

// MergeBatches merges the players of several batches into a new batch
func MergeBatches(source string, batches ...*Batch) (*Batch, *MergeResult) {
	collections := make([][]*Player, 0, len(batches))
	for _, b := range batches {
		if b == nil {
			continue
		}
		collections = append(collections, b.Players)
	}
	result := MergeAll(collections...)
	return NewBatch(source, result.Players), result
}
