package configs

import (
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/cmds"
)

type Module struct {
	dscope.Module
}

type Files []string

var configFiles = cmds.Collect[string]("-config", "load a CUE config file")

// DefaultFile is loaded when no -config flag is given and it exists in the working directory.
const DefaultFile = "stepviz.cue"

func (Module) Files() Files {
	if len(*configFiles) > 0 {
		return Files(*configFiles)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Files{DefaultFile}
	}
	return nil
}

func (Module) Loader(
	files Files,
) Loader {
	return NewLoader(files, Schema)
}
