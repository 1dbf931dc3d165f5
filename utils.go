package main

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

var errNoDocument = errors.New("clipboard holds no drawing")

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText drops control characters and anything around the
// outermost JSON object, so documents pasted from chat or mail still load.
func cleanClipboardText(text string) (string, error) {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	cleaned := result.String()
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return "", errNoDocument
	}
	return cleaned[start : end+1], nil
}

// yank copies the encoded drawing to the system clipboard.
func (m *model) yank() {
	data, err := MarshalDocument(m.editor.Stack().Document())
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.errorMessage = "Clipboard: " + err.Error()
		return
	}
	m.successMessage = "Copied drawing to clipboard"
}

// paste replaces the drawing with a document read from the clipboard.
func (m *model) paste() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = "Clipboard: " + err.Error()
		return
	}
	doc, err := cleanClipboardText(text)
	if err == nil {
		err = m.editor.loadBytes([]byte(doc))
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Pasted drawing"
}
