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
	"math"
	"math/rand"
	"os"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/float/kernel"
	"github.com/consensys/go-fprop/pkg/float/round"
	"github.com/consensys/go-fprop/pkg/util"
	"github.com/consensys/go-fprop/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags]",
	Short: "Check directed rounding and the configured transcendental backend.",
	Long: `Check that directed rounding works on this platform, then compare the
	enclosures of the configured transcendental backend against a reference
	computed with extra precision, for randomly sampled arguments.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := round.Check(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		log.Info("directed rounding ok")
		//
		samples := getUint(cmd, "samples")
		rng := rand.New(rand.NewSource(getInt64(cmd, "seed")))
		//
		if !checkBackend(float.Round().Backend(), samples, rng) {
			os.Exit(1)
		}
	},
}

// checkBackend compares a backend against the extended kernel at higher
// precision, printing a summary for each function.  Every enclosure must
// overlap the reference enclosure, otherwise the backend is unsound.  Each
// function is checked concurrently.
func checkBackend(backend round.Backend, samples uint, rng *rand.Rand) bool {
	var (
		stats     = util.NewPerfStats()
		reference = kernel.New(kernel.DefaultDigits + 20)
		funcs     = round.Funcs()
		tp        = termio.NewTablePrinter(4, uint(len(funcs))+1)
		// Construct a communication channel for results.
		ch      = make(chan funcCheck, len(funcs))
		results = make([]funcCheck, len(funcs))
		ok      = true
	)
	// Dispatch each function, sampling arguments up front since rng is not
	// safe for concurrent use.
	for i, fn := range funcs {
		args := make([]float64, samples)
		//
		for j := range args {
			args[j] = sample(fn, rng)
		}
		//
		go func(index int, fn round.Func) {
			ch <- checkFunc(index, fn, args, backend, reference)
		}(i, fn)
	}
	// Collect up all the results
	for range funcs {
		r := <-ch
		results[r.index] = r
	}
	//
	tp.SetRow(0, "function", "samples", "unsound", "max width (ulps)")
	//
	for i, r := range results {
		row := uint(i) + 1
		tp.SetRow(row, funcs[i].String(), fmt.Sprint(samples), fmt.Sprint(r.unsound), fmt.Sprint(r.widest))
		//
		if r.unsound > 0 {
			tp.SetRowEscape(row, termio.NewAnsiEscape().FgColour(termio.TERM_RED))
			//
			ok = false
		}
	}
	//
	tp.AlignLeft(0)
	tp.AnsiEscapes(termio.IsTerminal(os.Stdout))
	tp.Print(os.Stdout)
	stats.Log(fmt.Sprintf("Checking %s backend", backend.Name()))
	//
	return ok
}

// Outcome of checking a single function.
type funcCheck struct {
	index int
	// number of unsound enclosures
	unsound uint
	// widest sound enclosure
	widest uint
}

func checkFunc(index int, fn round.Func, args []float64, backend round.Backend, reference *kernel.Kernel) funcCheck {
	r := funcCheck{index: index}
	//
	for _, x := range args {
		lo, hi, err := backend.Eval(fn, x)
		rlo, rhi, rerr := reference.Eval(fn, x)
		//
		switch {
		case err != nil || rerr != nil:
			log.Debugf("%s(%g): %v, %v", fn, x, err, rerr)
			r.unsound++
		case lo > rhi || hi < rlo:
			log.Debugf("%s(%g): [%g,%g] excludes [%g,%g]", fn, x, lo, hi, rlo, rhi)
			r.unsound++
		default:
			r.widest = max(r.widest, ulps(lo, hi))
		}
	}
	//
	return r
}

// sample an argument within the domain of a given function.
func sample(fn round.Func, rng *rand.Rand) float64 {
	switch fn {
	case round.Asin, round.Acos, round.Atanh:
		return rng.Float64()*1.98 - 0.99
	case round.Log:
		return math.Exp(rng.Float64()*40 - 20)
	case round.Acosh:
		return 1 + math.Exp(rng.Float64()*20-10)
	case round.Exp, round.Sinh, round.Cosh:
		return rng.Float64()*100 - 50
	}
	//
	return rng.NormFloat64() * 10
}

// ulps counts the floats between two finite bounds, saturating for large
// distances.
func ulps(lo, hi float64) uint {
	var n uint
	//
	for x := lo; x < hi && n < 1000; x = round.Next(x) {
		n++
	}
	//
	return n
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Uint("samples", 1000, "number of arguments sampled per function")
	checkCmd.Flags().Int64("seed", 1, "seed for sampling arguments")
}
