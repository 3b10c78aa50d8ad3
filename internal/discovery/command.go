package discovery

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	hostRe = regexp.MustCompile(`(?i)[a-z0-9][a-z0-9_.-]*\.[a-z]{2,}`)
)

// Command runs an external enumeration tool and reads names from its stdout.
// Each "{domain}" in Args is replaced with the domain being enumerated.
// A relative Args[0] is resolved against Dir.
type Command struct {
	Args []string
	Dir  string
}

// ParseCommand parses one tool entry: an optional working directory and a
// "|" separator, then the command line, e.g.
//
//	subfinder -d {domain} -silent
//	/opt/Sublist3r|venv/bin/python sublist3r.py -d {domain}
func ParseCommand(entry string) (*Command, error) {
	var dir string
	if i := strings.Index(entry, "|"); i >= 0 {
		dir, entry = strings.TrimSpace(entry[:i]), entry[i+1:]
		if dir == "" {
			return nil, errors.New("empty working directory before \"|\"")
		}
	}
	args := strings.Fields(entry)
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return &Command{Args: args, Dir: dir}, nil
}

// ParseCommands parses a ";"-separated list of tool entries. Blank entries
// are skipped.
func ParseCommands(list string) ([]*Command, error) {
	var out []*Command
	for i, entry := range strings.Split(list, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		c, err := ParseCommand(entry)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Command) Name() string {
	if len(s.Args) == 0 {
		return "command"
	}
	return filepath.Base(s.Args[0])
}

func (s *Command) Enumerate(ctx context.Context, d string) ([]string, error) {
	if len(s.Args) == 0 {
		return nil, errors.New("empty command")
	}
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = strings.ReplaceAll(a, "{domain}", d)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = s.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}

	out, readErr := parseToolOutput(stdout)
	if readErr != nil {
		_, _ = io.Copy(io.Discard, stdout)
	}
	if err := cmd.Wait(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	if readErr != nil {
		return nil, fmt.Errorf("read %s output: %w", args[0], readErr)
	}
	return out, nil
}

// parseToolOutput pulls host names out of a tool's output. Colour codes,
// blank lines and "[+]" banner lines are dropped; a line may carry more than
// one name.
func parseToolOutput(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(ansiRe.ReplaceAllString(sc.Text(), ""))
		if line == "" || strings.HasPrefix(line, "[+]") {
			continue
		}
		out = append(out, hostRe.FindAllString(line, -1)...)
	}
	return out, sc.Err()
}

var _ Source = (*Command)(nil)
