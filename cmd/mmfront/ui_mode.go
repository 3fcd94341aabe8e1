package main

import (
	"fmt"
	"io"
	"strings"
)

// uiMode is the value of "check --ui".
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModeNames = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	if mode, ok := uiModeNames[strings.ToLower(strings.TrimSpace(value))]; ok {
		return mode, nil
	}
	return uiModeAuto, fmt.Errorf("check: invalid --ui value %q (expected auto|on|off)", value)
}

// showProgress decides whether check draws the live view on out. JSON and
// quiet runs never get it; auto mode wants a terminal.
func showProgress(mode uiMode, format string, quiet bool, out io.Writer) bool {
	if format != "pretty" || quiet || mode == uiModeOff {
		return false
	}
	return mode == uiModeOn || isTerminal(out)
}
