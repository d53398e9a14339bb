package interp

import "eps2pdf/internal/value"

// opEq implements value equality: numbers compare by value, strings by
// content, everything else by identity.
func opEq(ip *Interp, name string) error {
	b, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	return ip.Ops.Push(value.Boolean(value.Eq(a, b)))
}

// opCompare implements lt/le/gt/ge over numbers or text-strings.
func opCompare(ip *Interp, name string) error {
	b, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Ops.Pop()
	if err != nil {
		return err
	}
	c, err := value.Cmp(name, a, b)
	if err != nil {
		return err
	}
	var r bool
	switch name {
	case "lt":
		r = c < 0
	case "le":
		r = c <= 0
	case "gt":
		r = c > 0
	case "ge":
		r = c >= 0
	}
	return ip.Ops.Push(value.Boolean(r))
}
