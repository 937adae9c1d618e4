package main

import (
	"io"
	"log"
	"math/big"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/intcode/intcode"
)

// devMode runs the program in file, and runs it again each time the file
// changes, until the file watcher fails.
func devMode(w io.Writer, file string, cfg *config) error {
	return watchFile(file, func(prog []*big.Int) {
		log.Printf("dev: run %s", filepath.Base(file))
		if err := run(w, prog, cfg); err != nil {
			log.Printf("dev: %v", err)
		}
	})
}

// watchFile parses the program in file and passes it to load, immediately
// and then after every change to the file. Programs that fail to parse are
// logged and skipped. It only returns if the watcher cannot be started.
func watchFile(file string, load func([]*big.Int)) error {
	file = filepath.Clean(file)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(file)); err != nil {
		return err
	}

	reload := time.After(1 * time.Millisecond)
	for {
		select {
		case <-reload:
			prog, err := intcode.ReadFile(file)
			if err != nil {
				log.Printf("dev: %v", err)
				break
			}
			load(prog)
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == file && !ev.IsAttrib() {
				reload = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("dev: watcher: %v", err)
		}
	}
}
