package insts

type Kind uint8

const (
	KindRun Kind = iota + 1
	KindLet
	KindIf
	KindIfElse
	KindWhile
	KindForI
	KindReturn
	KindCall
	KindField
	KindMethod
	KindProgram
)

var kindNames = map[Kind]string{
	KindRun:     "RUN",
	KindLet:     "LET",
	KindIf:      "IF",
	KindIfElse:  "IF_ELSE",
	KindWhile:   "WHILE",
	KindForI:    "FORI",
	KindReturn:  "RETURN",
	KindCall:    "CALL",
	KindField:   "FIELD",
	KindMethod:  "METHOD",
	KindProgram: "PROGRAM",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}
