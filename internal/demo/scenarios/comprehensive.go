package scenarios

import (
	"time"

	"github.com/zhubert/ragdesk/internal/demo"
)

// Comprehensive shows how the client behaves when things go wrong or
// overlap. The flow is:
// 1. Upload a file type the backend rejects and read the error
// 2. Drop two files at once; only the first is kept and uploaded
// 3. Ask two questions back to back; only the newer answer is shown
// 4. Ask about something no document covers
var Comprehensive = &demo.Scenario{
	Name:        "comprehensive",
	Description: "Rejected uploads, multi-file drops, overlapping questions",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		Documents: []demo.Document{
			{Name: "architecture.png", Content: "not really an image"},
			{Name: "onboarding.txt", Content: "New hires receive a laptop on day one.\n\nBadges are issued by the front desk within a week."},
			{Name: "travel.md", Content: "Book flights through the travel portal."},
		},
		Indexed: []demo.Document{
			{Name: "benefits.md", Content: "Health coverage starts on the first day of the month after your start date.\n\nDental coverage is optional."},
		},
		Latency:  600 * time.Millisecond,
		Ordering: "latest",
		Focus:    "upload",
	},
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// === Rejected upload ===
		demo.Drop("architecture.png"),
		demo.Wait(600 * time.Millisecond),
		demo.Key("u"),
		demo.Settle(),
		demo.Annotate("The backend's error message is shown as-is"),
		demo.Wait(1500 * time.Millisecond),

		// === Two files dropped, first one kept ===
		demo.Drop("onboarding.txt", "travel.md"),
		demo.Wait(1 * time.Second),
		demo.Key("u"),
		demo.Settle(),
		demo.Wait(1 * time.Second),

		// === Overlapping questions ===
		demo.Key("tab"),
		demo.Type("When do badges get issued?"),
		demo.Key("enter"),
		demo.Key("ctrl+l"),
		demo.Type("When does health coverage start?"),
		demo.Key("enter"),
		demo.Annotate("Two questions in flight"),
		demo.Capture(),
		demo.Settle(),
		demo.Annotate("Only the newer answer is kept"),
		demo.Wait(2 * time.Second),

		// === Nothing relevant ===
		demo.Key("ctrl+l"),
		demo.Type("What is the parking policy?"),
		demo.Key("enter"),
		demo.Settle(),
		demo.Wait(2 * time.Second),
	},
}
