// Package operators holds the static operator table:
// every built-in name, its minimum stack arity, and whether that arity
// requires numeric operands, so arity checks have one source of truth
// independent of the interpreter's dispatch switch.
package operators

import "sort"

// Spec describes one operator table entry.
type Spec struct {
	Name    string
	NParams int
	Numeric bool
}

// setcmybcolor is kept as a second name with the same arity/behavior as
// setcmykcolor, a working (if misspelled) alias; a duplicate "get" row is
// dropped.
var table = []Spec{
	{"=", 1, false},
	{"==", 1, false},
	{"abs", 1, true},
	{"add", 2, true},
	{"aload", 1, false},
	{"and", 2, false},
	{"arc", 5, true},
	{"arcn", 5, true},
	{"array", 1, true},
	{"astore", 2, false},
	{"atan", 2, true},
	{"begin", 1, false},
	{"bind", 1, false},
	{"bitshift", 2, false},
	{"ceiling", 1, true},
	{"charpath", 2, false},
	{"clear", 0, false},
	{"cleartomark", 1, false},
	{"clip", 0, false},
	{"clippath", 0, false},
	{"closepath", 0, false},
	{"concat", 1, false},
	{"concatmatrix", 3, false},
	{"copy", 1, true},
	{"cos", 1, true},
	{"count", 0, false},
	{"counttomark", 1, false},
	{"currentcmykcolor", 0, false},
	{"currentdict", 0, false},
	{"currentfile", 0, false},
	{"currentflat", 0, false},
	{"currentgray", 0, false},
	{"currentlinecap", 0, false},
	{"currentlinejoin", 0, false},
	{"currentlinewidth", 0, false},
	{"currentmatrix", 1, false},
	{"currentmiterlimit", 0, false},
	{"currentpoint", 0, false},
	{"currentrgbcolor", 0, false},
	{"curveto", 6, true},
	{"cvs", 2, false},
	{"cvx", 1, false},
	{"def", 2, false},
	{"defaultmatrix", 1, false},
	{"dict", 1, true},
	{"div", 2, true},
	{"dtransform", 2, false},
	{"dup", 1, false},
	{"end", 0, false},
	{"eofill", 0, false},
	{"eq", 2, false},
	{"erasepage", 0, false},
	{"exch", 2, false},
	{"exec", 1, false},
	{"exit", 0, false},
	{"exp", 2, true},
	{"fill", 0, false},
	{"findfont", 1, false},
	{"flattenpath", 0, false},
	{"floor", 1, true},
	{"for", 4, false},
	{"ge", 2, false},
	{"get", 2, false},
	{"grestore", 0, false},
	{"gsave", 0, false},
	{"gt", 2, false},
	{"identmatrix", 1, false},
	{"idiv", 2, true},
	{"idtransform", 2, false},
	{"if", 2, false},
	{"ifelse", 3, false},
	{"index", 2, false},
	{"initmatrix", 0, false},
	{"invertmatrix", 2, false},
	{"itransform", 2, false},
	{"languagelevel", 0, false},
	{"le", 2, false},
	{"length", 1, false},
	{"lineto", 2, true},
	{"ln", 1, true},
	{"load", 1, false},
	{"log", 1, true},
	{"lt", 2, false},
	{"mark", 0, false},
	{"matrix", 0, false},
	{"mod", 2, true},
	{"moveto", 2, true},
	{"mul", 2, true},
	{"neg", 1, true},
	{"newpath", 0, false},
	{"not", 1, false},
	{"or", 2, false},
	{"pop", 1, false},
	{"product", 0, false},
	{"pstack", 0, false},
	{"put", 3, false},
	{"quit", 0, false},
	{"rand", 0, false},
	{"rcurveto", 6, true},
	{"rectfill", 4, true},
	{"rectstroke", 4, true},
	{"repeat", 2, false},
	{"restore", 1, false},
	{"rlineto", 2, true},
	{"rmoveto", 2, true},
	{"roll", 2, true},
	{"rotate", 1, false},
	{"round", 1, true},
	{"rrand", 0, false},
	{"save", 0, false},
	{"scale", 2, false},
	{"scalefont", 1, true},
	{"selectfont", 2, false},
	{"setcmybcolor", 4, true},
	{"setcmykcolor", 4, true},
	{"setdash", 2, false},
	{"setflat", 1, true},
	{"setfont", 1, false},
	{"setglobal", 1, false},
	{"setgray", 1, true},
	{"setlinecap", 1, true},
	{"setlinejoin", 1, true},
	{"setlinewidth", 1, true},
	{"setmatrix", 1, false},
	{"setmiterlimit", 1, true},
	{"setpagedevice", 1, false},
	{"setrgbcolor", 3, true},
	{"show", 1, false},
	{"showpage", 0, false},
	{"sin", 1, true},
	{"sqrt", 1, true},
	{"srand", 1, true},
	{"stack", 1, false},
	{"start", 0, false},
	{"string", 1, true},
	{"stringwidth", 1, false},
	{"stroke", 0, false},
	{"sub", 2, true},
	{"token", 1, false},
	{"transform", 2, false},
	{"translate", 2, false},
	{"truncate", 1, true},
	{"version", 0, false},
	{"where", 1, false},
	{"xor", 2, false},
}

func init() {
	sort.Slice(table, func(i, j int) bool { return table[i].Name < table[j].Name })
}

// Find binary-searches the sorted operator table.
func Find(name string) (Spec, bool) {
	i := sort.Search(len(table), func(i int) bool { return table[i].Name >= name })
	if i < len(table) && table[i].Name == name {
		return table[i], true
	}
	return Spec{}, false
}

// Count is the system dictionary's reported size, including the 3 literal
// constants true/false/null.
func Count() int { return len(table) + 3 }

// Names returns every operator name in table order, for callers that need
// to enumerate the system dictionary.
func Names() []string {
	names := make([]string, len(table))
	for i, s := range table {
		names[i] = s.Name
	}
	return names
}
