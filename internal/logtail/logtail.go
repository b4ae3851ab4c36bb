package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		// Keep the window bounded; compact once the dropped prefix is large.
		if maxLines > 0 && len(lines) > 2*maxLines {
			lines = append(lines[:0], lines[len(lines)-maxLines:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

var (
	timeColor = color.New(color.FgHiBlack)
	keyColor  = color.New(color.FgBlue)

	levelColors = map[string]*color.Color{
		"DBG": color.New(color.FgCyan),
		"INF": color.New(color.FgGreen, color.Bold),
		"WRN": color.New(color.FgYellow, color.Bold),
		"ERR": color.New(color.FgRed, color.Bold),
	}
)

// ColorizeLine highlights one log line of the form
// "2006-01-02 15:04:05 LVL message key=value ...". Lines that do not match
// are returned unchanged.
func ColorizeLine(line string) string {
	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 3 {
		return line
	}
	lc, ok := levelColors[fields[2]]
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(timeColor.Sprint(fields[0] + " " + fields[1]))
	b.WriteByte(' ')
	b.WriteString(lc.Sprint(fields[2]))
	if len(fields) == 4 {
		b.WriteByte(' ')
		b.WriteString(colorizeAttrs(fields[3]))
	}
	return b.String()
}

// ColorizeLines applies ColorizeLine to every line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}

// colorizeAttrs highlights the key of each key=value token.
func colorizeAttrs(rest string) string {
	words := strings.Split(rest, " ")
	for i, w := range words {
		key, value, ok := strings.Cut(w, "=")
		if !ok || key == "" || strings.ContainsAny(key, `"'`) {
			continue
		}
		words[i] = keyColor.Sprint(key) + "=" + value
	}
	return strings.Join(words, " ")
}
