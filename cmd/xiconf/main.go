package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	lib "github.com/xi-proteomics/xiconf"
	"github.com/xi-proteomics/xiconf/config"
	"github.com/xi-proteomics/xiconf/formatter"
	"github.com/xi-proteomics/xiconf/internal"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	in := flag.String("in", "", "search parameter file (overrides config.input.path)")
	format := flag.String("format", "json", "json|yaml|toml|directives")
	check := flag.Bool("check", false, "validate only, no output; non-zero exit on failure")
	flag.Parse()

	internal.InitLogging()

	switch *mode {
	case "oneshot":
		path := *in
		if path == "" {
			if err := config.LoadAppConfig(); err != nil {
				log.Fatalf("no -in flag and no config.yml: %v", err)
			}
			path = config.Config.Input.Path
		}
		if path == "" {
			log.Fatal("no search parameter file given (-in or config.input.path)")
		}

		sc, warnings, err := lib.Load(path)
		if warnings != nil {
			warnings.LogAll(path)
		}
		if err != nil {
			log.Printf("%s: %v", path, err)
			os.Exit(1)
		}
		if *check {
			log.Printf("%s: ok", path)
			return
		}

		var out []byte
		switch *format {
		case "json":
			out, err = formatter.JSON(sc)
		case "yaml":
			out, err = formatter.YAML(sc)
		case "toml":
			out, err = formatter.TOML(sc)
		case "directives":
			out = formatter.Directives(sc)
		default:
			log.Fatalf("unknown format %q", *format)
		}
		if err != nil {
			log.Fatalf("serializing %s: %v", path, err)
		}
		fmt.Println(string(out))
	case "serve":
		if err := config.LoadAppConfig(); err != nil {
			log.Fatalf("loading config.yml: %v", err)
		}
		lib.StartServer()
		lib.HandleGracefulShutdown()
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
