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
package main

import (
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

// funcSpec describes one transcendental function of the rounding policy.
type funcSpec struct {
	// Name of the function, matching its round.Func constant.
	Name string
	// Doc is the mathematical expression used in generated comments.
	Doc string
}

type policyConfig struct {
	Funcs []funcSpec
}

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "go-fprop")
	//
	cfg := policyConfig{[]funcSpec{
		{"Sin", "sin(x)"},
		{"Cos", "cos(x)"},
		{"Tan", "tan(x)"},
		{"Asin", "asin(x)"},
		{"Acos", "acos(x)"},
		{"Atan", "atan(x)"},
		{"Exp", "e^x"},
		{"Log", "ln(x)"},
		{"Sinh", "sinh(x)"},
		{"Cosh", "cosh(x)"},
		{"Tanh", "tanh(x)"},
		{"Asinh", "asinh(x)"},
		{"Acosh", "acosh(x)"},
		{"Atanh", "atanh(x)"},
	}}
	//
	assertNoError(bgen.Generate(cfg, "round", "templates",
		bavard.Entry{
			File:      "../../transcendental.go",
			Templates: []string{"transcendental.go.tmpl"},
		},
	), "for rounding policy")
	// run gofmt on the generated file
	runCmd("gofmt", "-w", "../../transcendental.go")
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "")
}

func assertNoError(err error, contextAndArgs ...any) {
	if err != nil {
		msg := err.Error()

		if len(contextAndArgs) > 0 {
			allArgs := append(slices.Clone(contextAndArgs[1:]), err)
			msg = fmt.Sprintf(contextAndArgs[0].(string)+": %v", allArgs...)
		}

		fmt.Println(msg)
		os.Exit(1)
	}
}
