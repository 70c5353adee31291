package rootfind

// Column describes one trace table column for a method: the header a driver
// should print and how to pull the value out of an Iter. The iteration index
// is not listed; every table starts with it.
type Column struct {
	Header string
	Value  func(Iter) float64
}

// Columns reports the trace layout for a method.
func Columns(m Method) []Column {
	switch m {
	case MethodBisection, MethodRegulaFalsi:
		return []Column{
			{"a", func(it Iter) float64 { return it.A }},
			{"b", func(it Iter) float64 { return it.B }},
			{"c", func(it Iter) float64 { return it.X }},
			{"f(c)", func(it Iter) float64 { return it.FX }},
			{"error", func(it Iter) float64 { return it.Err }},
		}
	case MethodSecant:
		return []Column{
			{"x(i-1)", func(it Iter) float64 { return it.A }},
			{"x(i)", func(it Iter) float64 { return it.B }},
			{"x(i+1)", func(it Iter) float64 { return it.X }},
			{"f(x)", func(it Iter) float64 { return it.FX }},
			{"error", func(it Iter) float64 { return it.Err }},
		}
	case MethodNewton:
		return []Column{
			{"x(i)", func(it Iter) float64 { return it.A }},
			{"f(x)", func(it Iter) float64 { return it.FX }},
			{"f'(x)", func(it Iter) float64 { return it.DFX }},
			{"x(i+1)", func(it Iter) float64 { return it.X }},
			{"error", func(it Iter) float64 { return it.Err }},
		}
	case MethodFixedPoint:
		return []Column{
			{"x(i)", func(it Iter) float64 { return it.A }},
			{"g(x)", func(it Iter) float64 { return it.X }},
			{"error", func(it Iter) float64 { return it.Err }},
		}
	case MethodModifiedSecant:
		return []Column{
			{"x(i)", func(it Iter) float64 { return it.A }},
			{"x(i+1)", func(it Iter) float64 { return it.X }},
			{"f(x)", func(it Iter) float64 { return it.FX }},
			{"error", func(it Iter) float64 { return it.Err }},
		}
	default:
		return nil
	}
}
