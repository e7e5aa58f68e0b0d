package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-layout/pkg/config"
)

// interactive reports whether prompts can be shown. Tests replace it.
var interactive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// chooseView returns flagged when set. Otherwise it prompts on a terminal and
// falls back to the first configured view.
func chooseView(cmd *cobra.Command, views []string, flagged string) (string, error) {
	if v := strings.TrimSpace(flagged); v != "" {
		return v, nil
	}
	if len(views) == 0 {
		views = []string{config.DefaultView}
	}
	if len(views) == 1 || !interactive() {
		return views[0], nil
	}

	var out string
	prompt := &survey.Select{
		Message: "View:",
		Options: views,
		Default: views[0],
	}
	err := survey.AskOne(prompt, &out,
		survey.WithStdio(os.Stdin, os.Stdout, os.Stderr),
	)
	if errors.Is(err, terminal.InterruptErr) {
		return "", fmt.Errorf("%s: prompt cancelled", cmd.Name())
	}
	if err != nil {
		return "", err
	}
	return out, nil
}
