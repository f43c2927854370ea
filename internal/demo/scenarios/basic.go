// Package scenarios contains built-in demo scenarios for ragdesk.
package scenarios

import (
	"time"

	"github.com/zhubert/ragdesk/internal/demo"
)

const handbook = `Expense reports are due on the fifth business day of each month.
Reports must include itemized receipts for anything over fifty dollars.

Late reports need written approval from your manager. Reimbursements are paid
with the next payroll run after approval.`

// Basic walks the happy path:
// - Dropping a document onto the terminal
// - Uploading it and reading the confirmation
// - Asking a question and browsing the retrieved passages
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Drop a document, upload it, ask a question",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		Documents: []demo.Document{
			{Name: "expense-policy.md", Content: handbook},
		},
		Latency: 300 * time.Millisecond,
		Focus:   "upload",
	},
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),
		demo.Capture(),

		demo.Annotate("Drag a file onto the terminal"),
		demo.Drop("expense-policy.md"),
		demo.Wait(800 * time.Millisecond),

		demo.KeyWithDesc("u", "Upload the selected file"),
		demo.Capture(),
		demo.Settle(),
		demo.Wait(1 * time.Second),

		demo.KeyWithDesc("tab", "Focus the question input"),
		demo.Type("When are expense reports due?"),
		demo.Wait(500 * time.Millisecond),
		demo.Capture(),

		demo.Key("enter"),
		demo.Capture(),
		demo.Settle(),
		demo.Wait(1500 * time.Millisecond),

		demo.KeyWithDesc("tab", "Focus the passages"),
		demo.Key("space"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		demo.Key("E"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),

		demo.Wait(2 * time.Second),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Comprehensive,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
