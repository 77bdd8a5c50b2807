// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package prompt

import (
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ Prompter is everything the interactive commands ask of the terminal
type Prompter interface {
	// Text asks for one line of input
	Text(prompt string) (string, error)

	// Select asks for one of options
	Select(prompt string, options []string) (string, error)

	// MultiSelect asks for any number of options
	MultiSelect(prompt string, options []string) ([]string, error)

	// Confirm asks a yes/no question
	Confirm(prompt string, def bool) (bool, error)

	// Progress starts a progress indicator for total steps
	Progress(title string, total int) Progress
}

// 📊 Progress tracks a running batch
type Progress interface {
	Increment()
	Stop()
}

// 🖥️ Pterm prompts on the real terminal
type Pterm struct{}

var _ Prompter = Pterm{}

// NewPterm returns the terminal prompter.
func NewPterm() Pterm {
	return Pterm{}
}

func (Pterm) Text(prompt string) (string, error) {
	text, err := pterm.DefaultInteractiveTextInput.Show(prompt)
	if err != nil {
		return "", errors.Errorf("reading input: %w", err)
	}
	return text, nil
}

func (Pterm) Select(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("nothing to select")
	}
	choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show(prompt)
	if err != nil {
		return "", errors.Errorf("reading selection: %w", err)
	}
	return choice, nil
}

func (Pterm) MultiSelect(prompt string, options []string) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}
	choices, err := pterm.DefaultInteractiveMultiselect.WithOptions(options).Show(prompt)
	if err != nil {
		return nil, errors.Errorf("reading selection: %w", err)
	}
	return choices, nil
}

func (Pterm) Confirm(prompt string, def bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(prompt)
	if err != nil {
		return false, errors.Errorf("reading confirmation: %w", err)
	}
	return ok, nil
}

func (Pterm) Progress(title string, total int) Progress {
	if total <= 0 {
		return noop{}
	}
	bar, err := pterm.DefaultProgressbar.WithTotal(total).WithTitle(title).Start()
	if err != nil {
		return noop{}
	}
	return &ptermProgress{bar: bar}
}

type ptermProgress struct {
	bar *pterm.ProgressbarPrinter
}

func (p *ptermProgress) Increment() {
	p.bar.Increment()
}

func (p *ptermProgress) Stop() {
	_, _ = p.bar.Stop()
}

type noop struct{}

func (noop) Increment() {}
func (noop) Stop()      {}
