// Command intcode runs Intcode programs, alone or wired into amplifiers,
// a hull-painting robot or an arcade cabinet.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/intcode/intcode"
)

func main() {
	log.SetPrefix("intcode: ")
	log.SetFlags(0)

	cfg := newConfig()
	var (
		configFlag = flag.String("config", "", "read settings from TOML `file` (flags take precedence)")
		devFlag    = flag.Bool("dev", false, "enable developer mode (re-run the program whenever it changes)")
		debugFlag  = flag.Bool("debug", false, "enable the interactive debugger")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)
	cfg.register(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.txt>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -amp <series|feedback> [-phases 0,1,2,3,4] <program.txt>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -paint [-start 1] [-gui] <program.txt>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -arcade [-free] [-tui [-manual]] [-gui] <program.txt>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -target <n> <program.txt>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -debug [-dev] [-in values] [-wait] <program.txt>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	file := flag.Arg(0)

	if *configFlag != "" {
		if err := cfg.load(*configFlag, flag.CommandLine); err != nil {
			log.Fatal(err)
		}
	}

	if *debugFlag {
		if err := debugMode(file, cfg, *devFlag); err != nil {
			log.Fatal(err)
		}
		return
	}
	if *devFlag {
		log.Fatal(devMode(os.Stdout, file, cfg))
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := runFile(os.Stdout, file, cfg)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func runFile(w io.Writer, file string, cfg *config) error {
	prog, err := intcode.ReadFile(file)
	if err != nil {
		return err
	}
	return run(w, prog, cfg)
}
