package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var usageWriter io.Writer = os.Stderr

func (p *Executor) PrintUsage() {
	p.WriteUsage(usageWriter)
}

// WriteUsage lists commands sorted by name. Aliases are printed with their command.
func (p *Executor) WriteUsage(w io.Writer) {
	printed := make(map[*Command]bool)
	names := lo.Keys(p.commands)
	slices.Sort(names)
	for _, name := range names {
		command := p.commands[name]
		if command.Hidden || printed[command] || slices.Contains(command.Aliases, name) {
			continue
		}
		printed[command] = true
		writeCommand(w, name, command)
	}
}

func writeCommand(w io.Writer, name string, command *Command) {
	title := strings.Join(append([]string{name}, command.Aliases...), ", ")
	for i := range command.Func.Type().NumIn() {
		title += " <" + command.Func.Type().In(i).String() + ">"
	}
	if command.Description != "" {
		fmt.Fprintf(w, "%s\n\t%s\n", title, command.Description)
	} else {
		fmt.Fprintf(w, "%s\n", title)
	}
}
