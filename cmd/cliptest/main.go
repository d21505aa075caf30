//go:build ignore

package main

import (
	"fmt"

	"github.com/zhubert/parley/internal/clipboard"
)

func main() {
	fmt.Println("Testing clipboard round trip...")
	if err := clipboard.WriteText("parley clipboard check"); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	text, err := clipboard.ReadText()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if text == "" {
		fmt.Println("Clipboard is empty")
		return
	}
	fmt.Printf("Clipboard holds %d bytes: %q\n", len(text), text)
}
