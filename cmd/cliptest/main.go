//go:build ignore

package main

import (
	"fmt"
	"time"

	"github.com/zhubert/ragdesk/internal/clipboard"
)

func main() {
	want := "ragdesk clipboard check " + time.Now().Format(time.RFC3339)
	fmt.Println("Testing clipboard write/read...")
	if err := clipboard.WriteText(want); err != nil {
		fmt.Printf("Write error: %v\n", err)
		return
	}
	got, err := clipboard.ReadText()
	if err != nil {
		fmt.Printf("Read error: %v\n", err)
		return
	}
	if got != want {
		fmt.Printf("Mismatch: wrote %q, read %q\n", want, got)
		return
	}
	fmt.Println("Clipboard round trip OK")
}
