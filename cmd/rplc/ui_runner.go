package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rplc/internal/driver"
	"rplc/internal/ui"
)

// uiMode selects whether gen renders the interactive progress view.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	case "":
		return uiModeAuto, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI решает по режиму и терминалу, рисовать ли прогресс.
func shouldUseTUI(mode uiMode) bool {
	if mode == uiModeAuto {
		return isTerminal(os.Stdout)
	}
	return mode == uiModeOn
}

type batchOutcome struct {
	outcomes []driver.PacketOutcome
	err      error
}

// runBatchWithUI runs the pipeline behind a Bubble Tea progress view.
// The pipeline pushes events into a channel consumed by the model; the
// real result travels over a side channel.
func runBatchWithUI(ctx context.Context, title string, packets []string, req driver.BatchRequest) ([]driver.PacketOutcome, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		outcomes, err := driver.RunBatch(ctx, reqCopy)
		outcomeCh <- batchOutcome{outcomes: outcomes, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, packets, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.outcomes, uiErr
	}
	return outcome.outcomes, outcome.err
}
