package toc

// Options controls how entries are turned into sections.
type Options struct {
	// Deep keeps entries of every level. When false only the
	// shallowest level present in the outline is used.
	Deep bool

	// MergeSamePage lets an entry absorb the deeper entries that
	// directly follow it on the same start page instead of being
	// dropped as a zero-length section.
	MergeSamePage bool
}

// Partition computes one section per retained entry.
//
// Section ids are assigned from the level-filtered sequence before range
// validation, so a dropped entry leaves a hole in the id sequence. ids are
// therefore only stable for a given Options.Deep setting.
func Partition(entries []Entry, totalPages int, opts Options) []Section {
	filtered := filterLevel(entries, opts.Deep)
	if len(filtered) == 0 || totalPages <= 0 {
		return nil
	}

	sections := make([]Section, 0, len(filtered))
	for i := 0; i < len(filtered); i++ {
		entry := filtered[i]

		// Index of the entry that bounds this one
		next := i + 1
		if opts.MergeSamePage {
			for next < len(filtered) && absorbs(entry, filtered[next]) {
				next++
			}
		}

		start := entry.Page - 1
		end := totalPages - 1
		if next < len(filtered) {
			end = filtered[next].Page - 2
		}

		if start < 0 {
			start = 0
		}
		if end > totalPages-1 {
			end = totalPages - 1
		}

		if start <= end {
			sections = append(sections, Section{
				ID:    i + 1,
				Title: entry.Title,
				Level: entry.Level,
				Start: start,
				End:   end,
			})
		}

		// Absorbed entries keep their ids reserved
		i = next - 1
	}

	return sections
}

// absorbs reports whether parent swallows child under MergeSamePage.
func absorbs(parent, child Entry) bool {
	return child.Page == parent.Page && child.Level > parent.Level
}

// filterLevel keeps every entry in deep mode, otherwise only the entries
// at the minimum level. Order is preserved.
func filterLevel(entries []Entry, deep bool) []Entry {
	if deep || len(entries) == 0 {
		return entries
	}

	minLevel := entries[0].Level
	for _, e := range entries[1:] {
		if e.Level < minLevel {
			minLevel = e.Level
		}
	}

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Level == minLevel {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
