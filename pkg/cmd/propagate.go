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
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strconv"

	"github.com/consensys/go-fprop/pkg/model"
	"github.com/consensys/go-fprop/pkg/prop"
	"github.com/consensys/go-fprop/pkg/util"
	"github.com/consensys/go-fprop/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// propagateCmd represents the propagate command
var propagateCmd = &cobra.Command{
	Use:   "propagate [flags] model_file",
	Short: "Narrow the variables of a model to a fixpoint.",
	Long: `Load a model of real constraints over interval variables, then narrow the
	domains of its variables until no propagator can narrow them any further.
	The resulting domains enclose every solution of the model.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var cfg propagateConfig
		//
		cfg.stats = getFlag(cmd, "stats")
		cfg.steps = getUint(cmd, "steps")
		cfg.colour = termio.IsTerminal(os.Stdout) && !getFlag(cmd, "no-colour")
		//
		if cfg.steps == 0 {
			cfg.steps = settings.Propagation.MaxSteps
		}
		//
		if !propagate(args[0], cfg) {
			os.Exit(1)
		}
	},
}

// propagate config encapsulates parameters for a single run.
type propagateConfig struct {
	// maximum number of propagator executions
	steps uint
	// report metrics after propagation
	stats bool
	// use ANSI escapes when printing domains
	colour bool
}

// propagate loads and propagates a model, returning false if the model has no
// solution.
func propagate(filename string, cfg propagateConfig) bool {
	stats := util.NewPerfStats()
	file := readSourceFile(filename)
	// Load the model
	m, errs := model.Load(file, nil)
	if len(errs) > 0 {
		exitWithSyntaxErrors(errs)
	}
	//
	stats.Log("Loading model")
	log.Infof("loaded %d variables and %d constraints from %s", len(m.Variables()), m.Constraints(), filename)
	//
	var (
		home    = m.Space()
		metrics = prop.NewMetrics()
	)
	//
	home.SetStepLimit(cfg.steps)
	home.SetMetrics(metrics)
	// Abandon propagation on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	//
	stats = util.NewPerfStats()
	status, err := home.Fixpoint(ctx)
	stats.Log("Propagation")
	//
	if err != nil {
		// domains remain sound, though not at a fixpoint
		log.Warn(err)
	}
	//
	if status == prop.ES_FAILED {
		fmt.Println(colour(cfg.colour, termio.TERM_RED, "no solution"))
	} else {
		printDomains(m, cfg)
	}
	//
	if cfg.stats {
		printStats(metrics)
	}
	//
	return status != prop.ES_FAILED
}

// Print the domain of every named variable in a table.
func printDomains(m *model.Model, cfg propagateConfig) {
	tp := domainTable(m, termio.Width(os.Stdout)/2)
	tp.AnsiEscapes(cfg.colour)
	tp.Print(os.Stdout)
}

// Tabulate the domain of every named variable.  Only names are clipped to the
// given width, since a clipped domain no longer encloses anything.
func domainTable(m *model.Model, width uint) *termio.TablePrinter {
	var (
		vars = m.Variables()
		tp   = termio.NewTablePrinter(3, uint(len(vars)))
	)
	//
	for i, v := range vars {
		row := uint(i)
		size := "-"
		//
		if !v.IsBool {
			size = strconv.FormatFloat(v.Float.Domain().Size(), 'g', 6, 64)
		}
		//
		tp.SetRow(row, v.Name, v.String(), size)
		//
		if assigned(v) {
			tp.SetRowEscape(row, termio.NewAnsiEscape().FgColour(termio.TERM_GREEN))
		}
	}
	//
	tp.AlignLeft(0)
	tp.SetMaxWidth(0, width)
	//
	return tp
}

func assigned(v *model.Variable) bool {
	if v.IsBool {
		return !v.Bool.None()
	}
	//
	return v.Float.Assigned()
}

// Print the value of every propagation metric, sorted by name.
func printStats(metrics *prop.Metrics) {
	values, err := metrics.Snapshot()
	if err != nil {
		log.Error(err)
		return
	}
	//
	var (
		keys = make([]string, 0, len(values))
		tp   = termio.NewTablePrinter(2, uint(len(values)))
	)
	//
	for k := range values {
		keys = append(keys, k)
	}
	//
	slices.Sort(keys)
	//
	for i, k := range keys {
		tp.SetRow(uint(i), k, strconv.FormatFloat(values[k], 'g', -1, 64))
	}
	//
	tp.AlignLeft(0)
	tp.Print(os.Stdout)
}

func colour(enable bool, col termio.Colour, text string) string {
	if !enable {
		return text
	}
	//
	return fmt.Sprintf("%s%s%s", termio.NewAnsiEscape().FgColour(col).Build(), text, termio.ResetAnsiEscape().Build())
}

func init() {
	rootCmd.AddCommand(propagateCmd)
	propagateCmd.Flags().Bool("stats", false, "report propagation metrics")
	propagateCmd.Flags().Uint("steps", 0, "maximum number of propagation steps (overrides configuration)")
	propagateCmd.Flags().Bool("no-colour", false, "disable coloured output")
}
