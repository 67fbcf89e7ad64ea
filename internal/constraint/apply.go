package constraint

// Apply dispatches every parsed Command to the matching Projector method,
// in file order (spec §5: "within a stage, updates are applied in input
// order"). It returns the sum of the counts the Apply* methods report:
// matched targets, or for create_clock the clock_domain writes applied.
func (p *Projector) Apply(commands []Command) int {
	total := 0
	for _, c := range commands {
		switch c.Kind {
		case KindClock:
			total += p.ApplyClock(c.Clock, c.Line)
		case KindFalsePath:
			total += p.ApplyFalsePath(c.FalsePath, c.Line)
		case KindMulticyclePath:
			total += p.ApplyMulticyclePath(c.MulticyclePath, c.Line)
		case KindDelay:
			total += p.ApplyDelay(c.Delay, c.Line)
		case KindIODelay:
			total += p.ApplyIODelay(c.IODelay, c.Line)
		case KindProperty:
			total += p.ApplyProperty(c.Property, c.Line)
		}
	}
	return total
}
