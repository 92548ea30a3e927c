package usecase

import "github.com/bibbank/guestrisk/internal/application/dto"

type demoScenario struct {
	name        string
	guest       string
	channel     string
	notes       string
	spend       float64
	party       int
	children    int
	advanceDays int
	needs       int
	cancels     int
	completions int
	repeat      bool
}

// demoScenarios span the risk buckets and every tag family.
var demoScenarios = []demoScenario{
	// High risk
	{name: "Serial No-Show", guest: "Alex Petrov", party: 6, spend: 35, cancels: 5, channel: "Online"},
	{name: "Ghost Booker", guest: "Ryan Cooper", party: 8, advanceDays: 30, spend: 40, cancels: 4, completions: 1, channel: "Online"},

	// Medium risk
	{name: "Risky Walk-in", guest: "Karen Mitchell", party: 2, spend: 40, cancels: 3, completions: 1, channel: "Walk-in",
		notes: "Last visit was terrible. Waiters were slow. Giving one more chance."},
	{name: "Large Group Unknown", guest: "Tom Bradley", party: 10, children: 3, advanceDays: 14, spend: 45, cancels: 1, channel: "Phone"},

	// Low risk
	{name: "VIP Anniversary", guest: "James & Sarah Whitfield", party: 2, advanceDays: 14, needs: 2, repeat: true, spend: 220, completions: 8, channel: "Phone",
		notes: "Anniversary dinner - 10th year. VIP regular, knows the chef. Window seat preferred."},
	{name: "Loyal Regular", guest: "David Chen (Acme Corp)", party: 5, advanceDays: 5, needs: 1, repeat: true, spend: 180, completions: 12, channel: "Corporate",
		notes: "Business lunch with clients. Need a quiet private area."},

	// Occasions
	{name: "Birthday Party", guest: "Maria Garcia", party: 8, children: 2, advanceDays: 7, needs: 2, repeat: true, spend: 95, completions: 5, channel: "App",
		notes: "Birthday celebration for Maria! Need a birthday cake. One guest is gluten-free. Balloons please."},
	{name: "Proposal Night", guest: "Ethan & Grace", party: 2, advanceDays: 10, needs: 3, spend: 250, channel: "Phone",
		notes: "Proposal night! Need the best window seat, champagne ready, quiet corner. Ring hidden with dessert."},
	{name: "Honeymoon Dinner", guest: "Liam & Aisha Bennett", party: 2, advanceDays: 7, needs: 1, spend: 200, channel: "Online",
		notes: "Honeymoon dinner! Celebrating with tasting menu. Terrace seating if weather permits."},

	// Dietary and allergy
	{name: "Severe Allergy", guest: "Priya Sharma", party: 4, children: 1, advanceDays: 3, needs: 3, spend: 75, channel: "Online",
		notes: "Severe nut allergy, carries epipen. Child needs high chair. Vegetarian, no onion no garlic."},
	{name: "Vegan + Kosher", guest: "Rachel Goldstein", party: 3, advanceDays: 5, needs: 2, repeat: true, spend: 110, completions: 3, channel: "Phone",
		notes: "Strictly kosher. One guest is vegan. Please confirm menu options in advance. Dairy-free dessert needed."},
	{name: "Halal + Jain Guest", guest: "Mohammed & Anita", party: 4, advanceDays: 4, needs: 2, spend: 90, channel: "App",
		notes: "Two guests require halal food. One guest follows jain diet strictly, no root vegetables. Booth seating preferred."},

	// Seating
	{name: "Window + Quiet", guest: "Elena Rossi", party: 2, advanceDays: 2, needs: 1, repeat: true, spend: 130, completions: 6, channel: "Phone",
		notes: "Date night. Window seat, quiet area please. Last time the table was too close to the kitchen."},
	{name: "Terrace Booth", guest: "Sofia Martinez", party: 4, advanceDays: 3, needs: 1, spend: 85, channel: "Online",
		notes: "Prefer terrace seating or a booth. Celebrating a promotion!"},

	// Family and accessibility
	{name: "Family with Toddlers", guest: "Raj & Meera Patel", party: 5, children: 3, advanceDays: 1, needs: 2, repeat: true, spend: 65, completions: 4, channel: "App",
		notes: "Two toddlers need high chairs. Baby is 8 months, need a quiet spot. One child has dairy-free diet."},
	{name: "Wheelchair Access", guest: "Margaret Johnson", party: 3, advanceDays: 7, needs: 2, spend: 100, channel: "Phone",
		notes: "Wheelchair accessible table required. Guest has mobility issues. Ground floor seating only."},

	// Status
	{name: "Celebrity Guest", guest: "Confidential VIP", party: 4, advanceDays: 2, needs: 3, spend: 300, channel: "Phone",
		notes: "Celebrity guest, security will arrive 30 min early. VIP treatment. Private booth, no photos. Vegan menu only."},

	// Edge cases
	{name: "First Timer", guest: "Noah Williams", party: 2, advanceDays: 3, spend: 70, channel: "Online"},
	{name: "Budget Walk-in", guest: "Sam Wilson", party: 2, spend: 25, channel: "Walk-in"},
}

// ListDemoScenarios serves ready-made reservations for trying the predictor.
type ListDemoScenarios struct{}

// NewListDemoScenarios creates a new ListDemoScenarios use case.
func NewListDemoScenarios() *ListDemoScenarios {
	return &ListDemoScenarios{}
}

// Execute returns a fresh copy of every scenario.
func (uc *ListDemoScenarios) Execute() dto.DemoScenariosResponse {
	scenarios := make([]dto.DemoScenario, 0, len(demoScenarios))
	for _, s := range demoScenarios {
		req := dto.NewPredictRequest()
		req.GuestName = s.guest
		req.PartySize = s.party
		req.Children = s.children
		req.BookingAdvanceDays = s.advanceDays
		req.SpecialNeedsCount = s.needs
		req.IsRepeatGuest = s.repeat
		req.EstimatedSpendPerCover = s.spend
		req.PreviousCancellations = s.cancels
		req.PreviousCompletions = s.completions
		req.BookingChannel = s.channel
		req.Notes = s.notes

		scenarios = append(scenarios, dto.DemoScenario{Name: s.name, Reservation: req})
	}
	return dto.DemoScenariosResponse{Scenarios: scenarios}
}
