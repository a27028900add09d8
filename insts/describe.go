package insts

import "fmt"

func DescribeLet(name string, value string) string {
	return fmt.Sprintf("let %s = %s;", name, value)
}

func DescribeIf(cond string) string {
	return fmt.Sprintf("if (%s)", cond)
}

func DescribeIfElse(cond string) string {
	return fmt.Sprintf("if (%s) else", cond)
}

func DescribeWhile(cond string) string {
	return fmt.Sprintf("while(%s)", cond)
}

func DescribeForI(iterator string, start string, cond string, step string) string {
	return fmt.Sprintf("for (let %s = %s; %s; %s += %s)", iterator, start, cond, iterator, step)
}
