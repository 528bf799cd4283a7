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
	"strings"

	"github.com/consensys/go-fprop/pkg/float"
	"github.com/consensys/go-fprop/pkg/model"
	"github.com/consensys/go-fprop/pkg/util/source"
	"github.com/spf13/cobra"
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval [flags] expr ...",
	Short: "Evaluate interval expressions.",
	Long: `Evaluate one or more interval expressions with outward rounding, printing
	an interval which encloses every possible value.  For example:

	fprop eval "(sin [0 1.6])" "(* x 0.1)" --let "x=[1 2]"`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		env := parseBindings(getStringArray(cmd, "let"))
		failed := false
		//
		for i, arg := range args {
			e, errs := model.ParseExpr(source.NewFile(fmt.Sprintf("expr#%d", i+1), []byte(arg)))
			if len(errs) > 0 {
				exitWithSyntaxErrors(errs)
			}
			//
			if v, err := e.Eval(env); err != nil {
				fmt.Printf("%s: %v\n", e, err)
				//
				failed = true
			} else {
				fmt.Printf("%s = %s\n", e, v)
			}
		}
		//
		if failed {
			os.Exit(1)
		}
	},
}

// parseBindings evaluates bindings of the form name=expr, in order, such that
// later bindings may refer to earlier ones.
func parseBindings(bindings []string) map[string]float.Interval {
	env := make(map[string]float.Interval)
	//
	for _, binding := range bindings {
		name, text, ok := strings.Cut(binding, "=")
		name = strings.TrimSpace(name)
		//
		if !ok || name == "" {
			fmt.Printf("invalid binding %q (expected name=expr)\n", binding)
			os.Exit(2)
		}
		//
		e, errs := model.ParseExpr(source.NewFile(name, []byte(text)))
		if len(errs) > 0 {
			exitWithSyntaxErrors(errs)
		}
		//
		v, err := e.Eval(env)
		if err != nil {
			fmt.Printf("%s: %v\n", name, err)
			os.Exit(2)
		}
		//
		env[name] = v
	}
	//
	return env
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringArray("let", []string{}, "bind a variable to an interval (name=expr)")
}
