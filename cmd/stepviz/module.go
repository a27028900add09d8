package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/debugs"
	"github.com/reusee/stepviz/nets"
	"github.com/reusee/stepviz/stepvm"
	"github.com/reusee/stepviz/storages"
)

type Module struct {
	dscope.Module
	Stepvm   stepvm.Module
	Storages storages.Module
	Nets     nets.Module
	Debugs   debugs.Module
}
