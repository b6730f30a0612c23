// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Command hufarc packs files into a canonical-Huffman archive and unpacks them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const help = `HELP:
-c archive_name file1 [file2 ...] - to archive files file1, file2, ... and save result in file archive_name.
   Directories are archived recursively; doublestar globs such as 'src/**/*.go' are expanded.
-d archive_name [pattern ...] - unarchive files from archive archive_name and put in the current directory.
   With patterns, only matching names are written.
-l archive_name - list the names, sizes and xxhash64 digests of the files in archive_name.
-h - to display help on using the program.
`

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var err error
	switch {
	case len(args) >= 3 && args[0] == "-c":
		if err = createArchive(args[1], args[2:]); err == nil {
			fmt.Fprintln(stdout, "Archive created successfully!")
		}
	case len(args) >= 2 && args[0] == "-d":
		if err = extractArchive(args[1], ".", args[2:]); err == nil {
			fmt.Fprintln(stdout, "Files extracted successfully!")
		}
	case len(args) >= 2 && args[0] == "-l":
		err = listArchive(args[1], stdout)
	case len(args) >= 1 && args[0] == "-h":
		fmt.Fprint(stdout, help)
	default:
		fmt.Fprintln(stdout, "Invalid input. Please use -h to display help on using the program.")
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error!\n%v\n", err)
		return 1
	}
	return 0
}
