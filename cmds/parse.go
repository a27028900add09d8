package cmds

import (
	"fmt"
	"strings"
)

func parseBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "true", "t", "yes", "y", "on", "1":
		return true, nil
	case "false", "f", "no", "n", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("convert %s to bool", str)
}

// splitInline splits "-name=value" into its name and value.
func splitInline(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, "-") {
		return arg, "", false
	}
	return strings.Cut(arg, "=")
}
