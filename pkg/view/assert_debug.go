//go:build debug

package view

import "fmt"

func assertRendered(err error) {
	if err != nil {
		panic(fmt.Sprintf("failed to render line: %v", err))
	}
}
