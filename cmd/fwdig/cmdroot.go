// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/siemens/fwdig/config"
	"github.com/siemens/fwdig/extract"

	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
	_ "github.com/thediveo/lxkns/log/logrus"
)

var (
	workerNumber    *uint
	timeout         *time.Duration
	deadline        *time.Duration
	httpFirst       *bool
	insecure        *bool
	strictCIDR      *bool
	extractors      *[]string
	quiet           *bool
	live            *bool
	spinnerInterval *time.Duration
	pingCheck       *bool
	dnsResolver     *string
	configPath      *string
	debug           *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "fwdig [flags] targetAddressesFile",
		Short:   "fwdig queries the firmware versions of management controllers listed in a file",
		Version: "0.9",
		Args:    cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if *configPath != "" {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return err
				}
				if err := cfg.Apply(cmd.Flags()); err != nil {
					return err
				}
			}
			if *workerNumber < 1 || *workerNumber > 10 {
				return fmt.Errorf("--workers out of range [1..10]")
			}
			if *timeout <= 0 {
				return fmt.Errorf("--timeout must be positive")
			}
			if *deadline < 0 {
				return fmt.Errorf("--deadline must not be negative")
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			if _, err := extract.ByNames(*extractors); err != nil {
				return fmt.Errorf("--extract: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if *debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			return QueryAndReport(context.Background(), cmd.OutOrStdout(), args[0])
		},
	}
	// Sets up the flags.
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	workerNumber = rootCmd.PersistentFlags().Uint(
		"workers", 1, "number of hosts to query concurrently")
	timeout = rootCmd.PersistentFlags().Duration(
		"timeout", 5*time.Second, "timeout per HTTP request")
	deadline = rootCmd.PersistentFlags().Duration(
		"deadline", 0, "overall deadline for querying all hosts (0 for none)")
	httpFirst = rootCmd.PersistentFlags().Bool(
		"http-first", false, "try HTTP before HTTPS")
	insecure = rootCmd.PersistentFlags().Bool(
		"insecure", false, "accept any server certificate, such as self-signed ones")
	strictCIDR = rootCmd.PersistentFlags().Bool(
		"strict-cidr", false, "accept only IPv4 prefix lengths of 8, 16, 24, and 32")
	extractors = rootCmd.PersistentFlags().StringSlice(
		"extract", []string{"xml"}, "version extraction strategies to try in order (xml, tag, pattern)")
	quiet = rootCmd.PersistentFlags().Bool(
		"quiet", false, "skip invalid lines and hosts without version")
	live = rootCmd.PersistentFlags().Bool(
		"live", false, "show live progress while querying")
	spinnerInterval = rootCmd.PersistentFlags().Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	pingCheck = rootCmd.PersistentFlags().Bool(
		"ping", false, "ping hosts before querying them")
	dnsResolver = rootCmd.PersistentFlags().String(
		"resolver", "", "DNS resolver host:port for reverse lookups of the hosts")
	configPath = rootCmd.PersistentFlags().String(
		"config", "", "YAML file with flag defaults")
	return
}
