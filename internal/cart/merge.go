package cart

// Normalize turns posted lines into stored lines: entries without a product
// id are dropped, a non-positive quantity counts as 1 and repeated ids are
// collapsed by summing. First-seen order is kept.
func Normalize(incoming []IncomingItem) []Item {
	items := make([]Item, 0, len(incoming))
	index := make(map[string]int, len(incoming))

	for _, in := range incoming {
		id := in.ResolvedID()
		if id == "" {
			continue
		}

		q := in.Quantity
		if q <= 0 {
			q = 1
		}

		if i, ok := index[id]; ok {
			items[i].Quantity += q
			continue
		}
		index[id] = len(items)
		items = append(items, Item{ProductID: id, Quantity: q})
	}

	return items
}

// Merge adds incoming quantities onto stored ones for matching product ids.
// Stored lines keep their order; ids only present in incoming are appended.
func Merge(stored, incoming []Item) []Item {
	merged := make([]Item, 0, len(stored)+len(incoming))
	index := make(map[string]int, len(stored)+len(incoming))

	for _, it := range stored {
		if i, ok := index[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}

	for _, it := range incoming {
		if i, ok := index[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}

	return merged
}
