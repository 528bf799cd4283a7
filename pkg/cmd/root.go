// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/consensys/go-fprop/pkg/config"
	"github.com/consensys/go-fprop/pkg/float"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// settings determined from the configuration file and flags, applied before
// any command runs.
var settings = config.Default()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fprop",
	Short: "Interval constraint propagation over floating point variables.",
	Long: `Interval constraint propagation over floating point variables.
	Interval expressions can be evaluated with outward rounding, and models
	of real constraints narrowed to a fixpoint.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configure(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("fprop ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// configure loads the configuration file (if any), applies command-line
// overrides and installs the resulting rounding policy.
func configure(cmd *cobra.Command) {
	var err error
	//
	if settings, err = config.Load(getString(cmd, "config")); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if backend := getString(cmd, "backend"); backend != "" {
		settings.Rounding.Backend = backend
		//
		if err = settings.Validate(); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	level, _ := settings.Level()
	//
	if getFlag(cmd, "verbose") {
		level = log.DebugLevel
	}
	//
	log.SetLevel(level)
	//
	policy, err := settings.Policy()
	// directed rounding is not optional
	if err != nil {
		log.Fatal(err)
	}
	//
	float.SetRounding(policy)
	log.Debugf("using %s backend", policy.Backend().Name())
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file (yaml)")
	rootCmd.PersistentFlags().String("backend", "", "transcendental backend (extended or libm)")
}
