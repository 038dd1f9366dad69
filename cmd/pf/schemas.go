package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/propfield/propfield/schema"
)

// schemas prints the registered schema descriptions. A game binary
// embedding pf-style tooling links its schema packages so their
// registrations run before this does.
func schemas(cfg *SchemasConfig, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		d, err := schema.DescribeAll()
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(d)
		return err
	}
	for i, name := range args {
		s := schema.Lookup(name)
		if s == nil {
			return fmt.Errorf("no schema named %q", name)
		}
		d, err := s.DescribeYAML()
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("\n")); err != nil {
				return err
			}
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
	}
	return nil
}
