package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// getSimpleText prints a prompt and reads one trimmed line from the
// scanner. The scanner is the same one the REPL reads commands from.
func getSimpleText(scanner *bufio.Scanner, prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// getTypeList reads a comma-separated list of category tags. An empty
// answer yields nil, which the catalog treats as the implicit Null tag.
func getTypeList(scanner *bufio.Scanner, prompt string) ([]string, error) {
	text, err := getSimpleText(scanner, prompt)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	var tags []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, nil
}
