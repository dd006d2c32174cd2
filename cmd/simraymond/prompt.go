package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kprusa/simraymond/internal/raymondsim"
)

// promptConfig implements the two-question interactive flow from spec
// §6. Invalid load values re-prompt instead of failing, per spec §6's
// "Invalid values re-prompt."
func promptConfig(in io.Reader, out io.Writer, cfg raymondsim.Config) (raymondsim.Config, error) {
	r := bufio.NewReader(in)

	fmt.Fprint(out, "Please enter the number of nodes: ")
	n, err := readInt(r)
	if err != nil {
		return cfg, raymondsim.InputError{Field: "nodes", Reason: err.Error()}
	}
	cfg.Nodes = n

	for {
		fmt.Fprint(out, "Please enter the load: ")
		line, err := readLine(r)
		if err != nil {
			return cfg, raymondsim.InputError{Field: "load", Reason: err.Error()}
		}
		l, err := raymondsim.ParseSimLoad(line)
		if err != nil {
			fmt.Fprintln(out, "invalid load, please enter 1 (LOW), 2 (MED), or 3 (HIGH)")
			continue
		}
		cfg.Load = l
		break
	}

	return cfg, cfg.Validate()
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readInt(r *bufio.Reader) (int, error) {
	line, err := readLine(r)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(line)
}
