package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/refined/catalog"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check --type NAME VALUE...",
		Short: "Decode plain-text values and report violations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entry(cmd)
			if err != nil {
				return err
			}
			if e.Kind == catalog.KindRecord {
				return &exitError{code: exitUsage, err: fmt.Errorf("%s is a record and has no plain form", e.Name)}
			}
			invalid := 0
			for _, s := range args {
				r := result{Type: e.Name, Input: s, Valid: true}
				if _, err := e.Plain.Decode(s); err != nil {
					r = failed(e.Name, err)
					invalid++
				}
				if err := a.writeJSON(r); err != nil {
					return err
				}
			}
			a.log.Debug("check done", "type", e.Name, "values", len(args), "invalid", invalid)
			if invalid > 0 {
				return &exitError{code: exitInvalid}
			}
			return nil
		},
	}
	typeFlag(cmd)
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode --type NAME [FILE|-]",
		Short: "Decode a JSON document and print its canonical encoding",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entry(cmd)
			if err != nil {
				return err
			}
			text, err := a.readInput(args)
			if err != nil {
				return err
			}
			v, err := e.Pickler.Decode(text)
			if err != nil {
				if werr := a.writeJSON(failed(e.Name, err)); werr != nil {
					return werr
				}
				return &exitError{code: exitInvalid}
			}
			_, err = fmt.Fprintln(a.out, e.Pickler.Encode(v))
			return err
		},
	}
	typeFlag(cmd)
	return cmd
}

func (a *app) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode --type NAME VALUE",
		Short: "Convert a plain-text value into its JSON encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entry(cmd)
			if err != nil {
				return err
			}
			if e.Kind == catalog.KindRecord {
				return &exitError{code: exitUsage, err: fmt.Errorf("%s is a record and has no plain form", e.Name)}
			}
			v, err := e.Plain.Decode(args[0])
			if err != nil {
				if werr := a.writeJSON(failed(e.Name, err)); werr != nil {
					return werr
				}
				return &exitError{code: exitInvalid}
			}
			_, err = fmt.Fprintln(a.out, e.Pickler.Encode(v))
			return err
		},
	}
	typeFlag(cmd)
	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema --type NAME",
		Short: "Print the JSON Schema node of a type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.entry(cmd)
			if err != nil {
				return err
			}
			return a.writeDocument(a.cfg.GetString("format"), e.Pickler.JSONSchema())
		},
	}
	typeFlag(cmd)
	cmd.Flags().StringP("format", "f", formatJSON, "output format: json or yaml (env REFINED_FORMAT)")
	_ = a.cfg.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			for _, name := range c.Names() {
				e, _ := c.Lookup(name)
				line := name + "\t" + e.Kind
				if e.Description != "" {
					line += "\t" + e.Description
				}
				if _, err := fmt.Fprintln(a.out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// readInput returns the document named by args: a file path, "-" or nothing
// for standard input.
func (a *app) readInput(args []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(a.in)
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", &exitError{code: exitUsage, err: err}
	}
	return string(b), nil
}
