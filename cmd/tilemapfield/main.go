package main

import (
	"fmt"
	"log"
	"os"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: tilemapfield <command> [flags]

commands:
  check     list every tilemap field in a source file with its state
  normalize run text through a field and print the value text
  edit      run a tengo script over a field's tilemap
  render    write a field's tilemap as a PNG
  watch     re-check a source file whenever the project changes`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "check":
		err = runCheck(args, os.Stdout)
	case "normalize":
		err = runNormalize(args, os.Stdout)
	case "edit":
		err = runEdit(args, os.Stdout)
	case "render":
		err = runRender(args)
	case "watch":
		err = runWatch(args, os.Stdout)
	case "-h", "-help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
