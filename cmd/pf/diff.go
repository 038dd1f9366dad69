package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/propfield/propfield/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getDocFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getDocFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	changes := libdiff.Diff(a, b)
	differs := false
	for _, c := range changes {
		if c.Op != libdiff.OpEqual {
			differs = true
			break
		}
	}
	if !differs {
		return nil
	}
	if !cfg.Quiet {
		if err := libdiff.Render(cc.Out, changes); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}
