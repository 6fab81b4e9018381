package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

var outputJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	outcomeApplied    = "applied"
	outcomeIdempotent = "idempotent"
)

// commandOutcome is printed after a command went through.
type commandOutcome struct {
	Command string `json:"command"`
	Outcome string `json:"outcome"`
	ID      string `json:"id,omitempty"`
	Result  any    `json:"result,omitempty"`
}

func (a *app) print(v any) error {
	encoded, err := outputJSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.env.out, string(encoded))

	return err
}

// printOutcome prints how a command ended and, if given, the record as it is now.
func (a *app) printOutcome(command shell.Command, result shell.HandlerResult, id string, record any) error {
	outcome := outcomeApplied
	if result.Idempotent {
		outcome = outcomeIdempotent
	}

	return a.print(commandOutcome{
		Command: command.CommandType(),
		Outcome: outcome,
		ID:      id,
		Result:  record,
	})
}
