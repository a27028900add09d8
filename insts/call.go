package insts

type ArgsExpr func(v *Vars) map[string]any

// ReturnName is the binding a Return declares in the callee frame.
const ReturnName = "return"

type Call struct {
	Node
	method string
	args   ArgsExpr
	into   string
}

var _ Instruction = new(Call)

// NewCall invokes method with arguments evaluated in the caller scope.
// When into is not empty the callee's return value is written to that name.
func NewCall(method string, args ArgsExpr, into string) *Call {
	ret := &Call{
		method: method,
		args:   args,
		into:   into,
	}
	ret.init(method + "(?)")
	return ret
}

func (c *Call) Kind() Kind {
	return KindCall
}

func (c *Call) Nestable() bool {
	return false
}

func (c *Call) Children() []Instruction {
	return nil
}

func (c *Call) Method() string {
	return c.method
}

func (c *Call) Into() string {
	return c.into
}

func (c *Call) Args(v *Vars) map[string]any {
	if c.args == nil {
		return nil
	}
	return c.args(v)
}

// Bind builds an ArgsExpr passing a single argument.
func Bind(name string, value Expr) ArgsExpr {
	return func(v *Vars) map[string]any {
		return map[string]any{
			name: value(v),
		}
	}
}

// Pass builds an ArgsExpr forwarding caller variables under the same names.
func Pass(names ...string) ArgsExpr {
	return func(v *Vars) map[string]any {
		ret := make(map[string]any, len(names))
		for _, name := range names {
			ret[name] = v.Read(name)
		}
		return ret
	}
}
