package interp

// opFunc is one operator handler. The name is passed through so a single
// handler can serve several table entries (e.g. lt/le/gt/ge) and still
// report the right operator on error.
type opFunc func(ip *Interp, name string) error

// dispatch maps every operator table entry to its handler, grouped by
// concern: stack, math, logic, dictionary, control, path/graphics, font.
var dispatch = map[string]opFunc{
	// stack_ops.go
	"dup": opDup, "exch": opExch, "pop": opPop, "clear": opClear,
	"mark": opMark, "count": opCount, "counttomark": opCountToMark,
	"cleartomark": opClearToMark, "index": opIndex, "copy": opCopy,
	"roll": opRoll, "aload": opAload, "astore": opAstore, "array": opArrayOp,
	"pstack": opPstack, "stack": opStack, "=": opPrintTop, "==": opPrintTopVerbose,

	// math_ops.go
	"abs": opMathUnary, "ceiling": opMathUnary, "cos": opMathUnary,
	"floor": opMathUnary, "ln": opMathUnary, "log": opMathUnary,
	"neg": opMathUnary, "round": opMathUnary, "sin": opMathUnary,
	"sqrt": opMathUnary, "truncate": opMathUnary,
	"add": opMathBinary, "sub": opMathBinary, "mul": opMathBinary,
	"div": opMathBinary, "idiv": opMathBinary, "mod": opMathBinary,
	"atan": opMathBinary, "exp": opMathBinary,
	"and": opLogicBinary, "or": opLogicBinary, "xor": opLogicBinary,
	"bitshift": opLogicBinary, "not": opNot,
	"rand": opRand, "srand": opSrand, "rrand": opRrand,

	// compare_ops.go
	"eq": opEq, "lt": opCompare, "le": opCompare, "gt": opCompare, "ge": opCompare,

	// dict_ops.go
	"dict": opDict, "begin": opBegin, "end": opEnd, "currentdict": opCurrentDict,
	"def": opDef, "load": opLoad, "where": opWhere, "get": opGet, "put": opPut,
	"length": opLength, "bind": opBind, "cvs": opCvs, "cvx": opCvx,
	"string": opString, "token": opToken, "currentfile": opCurrentFile,

	// control_ops.go
	"if": opIf, "ifelse": opIfelse, "for": opFor, "repeat": opRepeat,
	"exit": opExit, "exec": opExec, "quit": opQuitOp, "save": opSave,
	"restore": opRestore, "setglobal": opSetGlobal,

	// path_ops.go
	"newpath": opNewpath, "moveto": opMoveto, "lineto": opLineto,
	"curveto": opCurveto, "closepath": opClosepath, "rmoveto": opRmoveto,
	"rlineto": opRlineto, "rcurveto": opRcurveto, "currentpoint": opCurrentpoint,
	"arc": opArc, "arcn": opArc, "rectfill": opRectFillStroke, "rectstroke": opRectFillStroke,
	"stroke": opStroke, "fill": opFill, "eofill": opEofill, "clip": opClip,
	"clippath": opClippath, "erasepage": opErasepage, "flattenpath": opFlattenpath,
	"setlinewidth": opSetlinewidth, "setlinecap": opSetlinecap,
	"setlinejoin": opSetlinejoin, "setmiterlimit": opSetmiterlimit,
	"setflat": opSetflat, "setdash": opSetdash,
	"setgray": opSetgray, "setrgbcolor": opSetrgbcolor,
	"setcmykcolor": opSetcmykcolor, "setcmybcolor": opSetcmykcolor,
	"currentgray": opCurrentgray, "currentrgbcolor": opCurrentrgbcolor,
	"currentcmykcolor": opCurrentcmykcolor, "currentlinewidth": opCurrentlinewidth,
	"currentlinecap": opCurrentlinecap, "currentlinejoin": opCurrentlinejoin,
	"currentmiterlimit": opCurrentmiterlimit, "currentflat": opCurrentflat,
	"gsave": opGsave, "grestore": opGrestore, "showpage": opShowpage,
	"matrix": opMatrix, "identmatrix": opIdentmatrix, "currentmatrix": opCurrentmatrix,
	"defaultmatrix": opDefaultmatrix, "initmatrix": opInitmatrix, "setmatrix": opSetmatrix,
	"concat": opConcat, "concatmatrix": opConcatmatrix, "invertmatrix": opInvertmatrix,
	"transform": opMatrixTransform, "itransform": opMatrixTransform,
	"dtransform": opMatrixTransform, "idtransform": opMatrixTransform,
	"scale": opScale, "rotate": opRotate, "translate": opTranslate,

	// font_ops.go
	"findfont": opFindfont, "scalefont": opScalefont, "setfont": opSetfont,
	"selectfont": opSelectfont, "show": opShow, "charpath": opCharpath,
	"stringwidth": opStringwidth,

	// misc_ops.go
	"languagelevel": opLanguagelevel, "product": opProduct, "version": opVersion,
	"start": opStart, "setpagedevice": opSetpagedevice,
}
