package cmds

import "os"

// GlobalExecutor holds commands defined at package init time, such as log level flags.
var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs os.Args against the global executor.
func Execute() error {
	return GlobalExecutor.Execute(os.Args[1:])
}
