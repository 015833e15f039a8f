package term

// VarsIn returns, in first-occurrence order, every distinct KindVar
// appearing in t. Wildcards are excluded: they are never named and each
// occurrence is independently fresh, so they have nothing to report as a
// query variable (spec.md §6, "Output contract").
func VarsIn(t Term) []Term {
	c := &varCollector{seen: map[VarID]bool{}}
	c.walk(t)
	return c.order
}

type varCollector struct {
	seen  map[VarID]bool
	order []Term
}

func (c *varCollector) walk(t Term) {
	switch t.Kind {
	case KindVar:
		id := idOf(t)
		if !c.seen[id] {
			c.seen[id] = true
			c.order = append(c.order, t)
		}
	case KindCompound, KindNegation, KindConjunction, KindDisjunction:
		for _, a := range t.Args {
			c.walk(a)
		}
	}
}
