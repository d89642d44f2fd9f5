// Package main provides the lintgate CLI, a quality gate that runs a static
// analyzer inside an activated development environment.
package main

func main() {
	Execute()
}
