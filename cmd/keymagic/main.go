package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/keymagic-rt/engine/pkg/engine"
	"github.com/keymagic-rt/engine/pkg/keyboard"
	"github.com/keymagic-rt/engine/pkg/matcher"
	"github.com/keymagic-rt/engine/pkg/rules"
	"github.com/keymagic-rt/engine/pkg/verify"
)

var logger = log.New(os.Stderr, "keymagic: ", 0)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keymagic",
		Short: "Inspect, validate and drive a compiled keyboard-layout file",
	}

	rootCmd.AddCommand(
		newLoadCmd(),
		newValidateCmd(),
		newInfoCmd(),
		newRulesCmd(),
		newProcessCmd(),
		newVerifyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.km2>",
		Short: "Load a keyboard file and report its basic stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := keyboard.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("loaded %s: v1.%d, %s strings, %s rules\n",
				args[0], kb.MinorVersion,
				humanize.Comma(int64(len(kb.Strings))), humanize.Comma(int64(len(kb.Rules))))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.km2>",
		Short: "Validate a keyboard file without loading it into an engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := keyboard.Validate(data); err != nil {
				fmt.Printf("invalid: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("valid: %s (%s)\n", args[0], humanize.Bytes(uint64(len(data))))
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.km2>",
		Short: "Print a keyboard file's metadata tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := keyboard.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Field", "Value"})
			table.Append([]string{"Name", kb.Name()})
			table.Append([]string{"Description", kb.Description()})
			table.Append([]string{"Hotkey", kb.Hotkey()})
			table.Append([]string{"Font family", kb.FontFamily()})
			table.Append([]string{"Icon size", humanize.Bytes(uint64(len(kb.IconData())))})
			table.Append([]string{"Track caps", fmt.Sprint(kb.Options.TrackCaps)})
			table.Append([]string{"Auto backspace", fmt.Sprint(kb.Options.AutoBksp)})
			table.Append([]string{"Eat", fmt.Sprint(kb.Options.Eat)})
			table.Append([]string{"Right Alt", fmt.Sprint(kb.Options.RightAlt)})
			table.Render()
			return nil
		},
	}
}

func newRulesCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "rules <file.km2>",
		Short: "List a keyboard file's rules in priority order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := keyboard.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			processed := rules.PreprocessAll(kb)
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "Priority", "States", "VKs", "Pattern length"})
			for i, r := range processed {
				if limit > 0 && i >= limit {
					break
				}
				table.Append([]string{
					strconv.Itoa(r.OriginalIndex),
					strconv.Itoa(r.Priority),
					strconv.Itoa(len(r.StateIDs)),
					strconv.Itoa(len(r.KeyCombo)),
					strconv.Itoa(r.PatternCharLen),
				})
			}
			table.Render()
			fmt.Printf("%s rules total\n", humanize.Comma(int64(len(processed))))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of rules to print (0 = all)")
	return cmd
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <file.km2> <keys>",
		Short: "Replay a string of characters through the engine and print the resulting composing text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := keyboard.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			e := engine.New()
			e.SetLogger(func(msg string) { logger.Println(msg) })
			e.LoadKeyboard(kb)

			for _, r := range args[1] {
				act := e.ProcessKey(matcher.KeyEvent{Character: r})
				fmt.Printf("key %q -> %s composing=%q\n", r, act.Type, act.Composing)
			}
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	var workers int
	var script string
	cmd := &cobra.Command{
		Use:   "verify <file.km2>",
		Short: "Run generated key scripts against a keyboard in parallel, checking testable properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := keyboard.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			var scripts []verify.Script
			for _, word := range strings.Fields(script) {
				var keys []matcher.KeyEvent
				for _, r := range word {
					keys = append(keys, matcher.KeyEvent{Character: r})
				}
				keys = append(keys, matcher.KeyEvent{VK: matcher.VKBack})
				scripts = append(scripts, verify.Script{Keys: keys})
			}
			if len(scripts) == 0 {
				return fmt.Errorf("no scripts to run; pass --script")
			}

			wp := verify.NewWorkerPool(kb, workers)
			wp.Run(scripts, true)

			violations := wp.Results.Violations()
			for _, v := range violations {
				fmt.Printf("script %d step %d: %s: %s\n", v.ScriptIndex, v.StepIndex, v.Property, v.Detail)
			}
			if len(violations) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&script, "script", "", "space-separated words to replay as independent scripts")
	return cmd
}
