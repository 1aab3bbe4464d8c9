package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/gaarutyunov/newlang/internal/cache"
	"github.com/gaarutyunov/newlang/pkg/eval"
	"github.com/gaarutyunov/newlang/pkg/macro"
)

// replCommand implements `newlang repl [-I DIR]... [--watch FILE]`: an
// interactive line-at-a-time session against one persistent Evaluator,
// optionally paired with an fsnotify watch on a single file that gets
// reloaded into the same session whenever it changes on disk.
func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "start an interactive NewLang session",
		Flags: []cli.Flag{
			importPathFlag,
			&cli.StringFlag{
				Name:  "watch",
				Usage: "re-evaluate this file into the session whenever it changes on disk",
			},
		},
		Action: func(c *cli.Context) error {
			sessionPaths := c.StringSlice("I")
			e := eval.New()
			if err := e.LoadSession(sessionPaths...); err != nil {
				return diagExit(err)
			}

			watchPath := c.String("watch")
			watchCache := cache.New("")
			if watchPath != "" {
				if err := reloadWatched(e, watchCache, watchPath); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				stop, err := watchFile(e, watchCache, watchPath)
				if err != nil {
					return usageExit("%v", err)
				}
				defer stop()
			}

			runREPL(e, watchCache, sessionPaths, watchPath)
			return nil
		},
	}
}

// runREPL reads one expression per line from stdin until EOF, evaluating
// each against e and printing its result or diagnosed error; a failed
// line never ends the session (spec §7: errors are recoverable values,
// not process-ending panics). Besides expressions it understands these
// meta-commands: `:quit`/`:exit` end the session, `:load FILE` preloads another file into the running
// session, and `:reload` clears c's hashes and re-evaluates every
// session path plus the watched file (if any), discarding the session's
// accumulated state and starting it over from those sources.
func runREPL(e *eval.Evaluator, c *cache.Cache, sessionPaths []string, watchPath string) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("nl> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			fmt.Print("nl> ")
			continue
		case line == ":quit", line == ":exit":
			return
		case line == ":reload":
			c.Clear()
			*e = *eval.New()
			if err := e.LoadSession(sessionPaths...); err != nil {
				fmt.Fprintln(os.Stderr, err)
			} else if watchPath != "" {
				if err := reloadWatched(e, c, watchPath); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
			}
			fmt.Print("nl> ")
			continue
		case strings.HasPrefix(line, ":load "):
			path := strings.TrimSpace(strings.TrimPrefix(line, ":load "))
			if err := e.LoadSession(path); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			fmt.Print("nl> ")
			continue
		}

		result, err := evalSource(e, "<repl>", line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Println(result.String())
		}
		fmt.Print("nl> ")
	}
}

// reloadWatched re-evaluates path into e if its content changed since
// the last check (or has never been checked), reporting the outcome
// along with how many macros the reloaded file declares (internal/cache's
// macro-count annotation, distinct from its plain content-hash check).
func reloadWatched(e *eval.Evaluator, c *cache.Cache, path string) error {
	changed, err := c.NeedsReload(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if !changed {
		return nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if _, err := evalSource(e, path, string(src)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if n, err := macro.CountDefs(string(src)); err == nil {
		c.RecordMacros(path, n)
	}
	fmt.Fprintf(os.Stderr, "[reloaded %s, %d macro(s)]\n", path, c.MacroCount(path))
	return nil
}

// watchFile starts an fsnotify watch on path's parent directory
// (fsnotify watches directories, not bare files, to survive editors that
// replace a file via rename-into-place) and reloads path into e on every
// write/create event that targets it. The returned stop func closes the
// watcher.
func watchFile(e *eval.Evaluator, c *cache.Cache, path string) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}
				if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					c.Invalidate(path)
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					if err := reloadWatched(e, c, path); err != nil {
						fmt.Fprintln(os.Stderr, err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintln(os.Stderr, "watch error:", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
