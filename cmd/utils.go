package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// GetPreferredEditor returns the editor command from env, or a default
func GetPreferredEditor() string {
	// 1. Check Environment
	if env := os.Getenv("VISUAL"); env != "" {
		return env
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	// 2. Fallback
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// OpenInEditor opens path in the user's preferred editor and waits for it to exit
func OpenInEditor(path string) error {
	editor := GetPreferredEditor()

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open '%s' with '%s': %w", path, editor, err)
	}
	return nil
}
