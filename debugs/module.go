package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
