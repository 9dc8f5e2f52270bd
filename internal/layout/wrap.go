package layout

// Wrap breaks one explicit line of runs into rows no wider than width.
//
// Breaks happen at spaces; a word longer than width is split at cell
// boundaries. Leading spaces of the first row are kept as far as they fit
// beside the first word, spaces at a break are dropped. A width of zero or
// less disables wrapping.
func Wrap(runs []Run, width int) [][]Run {
	if width <= 0 || len(runs) <= width {
		return [][]Run{runs}
	}

	var (
		rows    [][]Run
		line    []Run
		pending []Run
		indent  int
		started bool
	)
	flush := func() {
		rows = append(rows, line)
		line = nil
		pending = nil
		started = true
	}

	for i := 0; i < len(runs); {
		j := i
		if runs[i].blank() {
			for j < len(runs) && runs[j].blank() {
				j++
			}
			if len(line) == 0 && started {
				i = j
				continue
			}
			if len(line) == 0 && !started {
				// Indentation of the first row.
				line = append(line, runs[i:j]...)
				indent = j - i
			} else {
				pending = runs[i:j]
			}
			i = j
			continue
		}

		for j < len(runs) && !runs[j].blank() {
			j++
		}
		word := runs[i:j]
		i = j

		if len(line)+len(pending)+len(word) <= width {
			line = append(line, pending...)
			line = append(line, word...)
			pending = nil
			continue
		}
		switch {
		case !started && len(line) > 0 && len(line) == indent:
			line = line[:max(0, width-len(word))]
		case len(line) > 0:
			flush()
		}
		for len(word) > width {
			line = append(line, word[:width]...)
			word = word[width:]
			flush()
		}
		line = append(line, word...)
		pending = nil
	}
	if len(line) > 0 || len(rows) == 0 {
		rows = append(rows, line)
	}
	return rows
}
