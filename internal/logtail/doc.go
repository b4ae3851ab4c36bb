// Package logtail reads the end of lumen's log file and colorizes it for the
// `lumen logs` command.
//
// # Reading Log Files
//
// Read keeps a ring buffer of the last maxLines lines while scanning the file
// once, so memory stays O(maxLines) regardless of file size. A missing file
// yields no lines and no error.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, line := range logtail.ColorizeLines(lines) {
//		fmt.Println(line)
//	}
//
// # Colorizing
//
// Lines follow the layout written by the logging package:
//
//	2025-10-08 21:01:05 INF paired with bridge host=192.168.1.2
//
// ColorizeLine dims the timestamp, colors the level (DBG cyan, INF green,
// WRN yellow, ERR red) and highlights attribute keys. Anything else is left
// untouched. Colors follow fatih/color, so NO_COLOR and non-terminal output
// disable them.
package logtail
