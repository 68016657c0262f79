package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown content for the terminal. On any rendering
// error it falls back to the raw markdown text.
func printMarkdown(content string) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		fmt.Println(content)
		return
	}
	fmt.Print(out)
}
