//go:build !unix

package command

func exitCode(err error) int {
	return 1
}
