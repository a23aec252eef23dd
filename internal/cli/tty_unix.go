//go:build darwin || linux

package cli

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// acquireTTY opens /dev/tty and sets raw -echo mode, returning the tty file and a restore func.
func acquireTTY() (*os.File, func(), error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("open /dev/tty: %w", err)
	}
	// Save current settings
	var save *exec.Cmd
	if runtime.GOOS == "darwin" {
		save = exec.Command("stty", "-f", "/dev/tty", "-g")
	} else {
		save = exec.Command("stty", "-g")
	}
	save.Stdin = tty
	out, err := save.Output()
	if err != nil {
		tty.Close()
		return nil, nil, fmt.Errorf("stty -g failed: %w", err)
	}
	state := strings.TrimSpace(string(out))
	// Enable raw, -echo
	var raw *exec.Cmd
	if runtime.GOOS == "darwin" {
		raw = exec.Command("stty", "-f", "/dev/tty", "raw", "-echo")
	} else {
		raw = exec.Command("stty", "raw", "-echo")
	}
	raw.Stdin = tty
	if err := raw.Run(); err != nil {
		tty.Close()
		return nil, nil, fmt.Errorf("stty raw -echo failed: %w", err)
	}
	restore := func() {
		var cmd *exec.Cmd
		if runtime.GOOS == "darwin" {
			cmd = exec.Command("stty", "-f", "/dev/tty", state)
		} else {
			cmd = exec.Command("stty", state)
		}
		cmd.Stdin = tty
		_ = cmd.Run()
	}
	return tty, restore, nil
}

// detectTermWidth asks stty for the terminal size; 0 means unknown.
func detectTermWidth(tty *os.File) int {
	if tty == nil {
		return 0
	}
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.Command("stty", "-f", "/dev/tty", "size")
	} else {
		cmd = exec.Command("stty", "size")
	}
	cmd.Stdin = tty
	out, err := cmd.Output()
	if err != nil {
		return columnsFromEnv()
	}
	// "rows cols"
	fields := strings.Fields(string(out))
	if len(fields) != 2 {
		return columnsFromEnv()
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		return columnsFromEnv()
	}
	return n
}
