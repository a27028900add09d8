package debugs

import (
	"io"

	"github.com/reusee/stepviz/stepvm"
	"gopkg.in/yaml.v3"
)

func WriteDump(w io.Writer, dump stepvm.Dump) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return err
	}
	return enc.Close()
}
