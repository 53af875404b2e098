package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rigaml/portfolio"
	"github.com/rigaml/portfolio/renderer"
)

const model = "gemini-2.5-pro"

// Sources gives the accountant access to the user's data files. Loading is
// deferred so that every answer reflects the files as they are now.
type Sources struct {
	Ledger func() (*portfolio.Ledger, error)
	Rates  func() (*portfolio.RateTable, error)
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the realized profits of his brokerage accounts:
			which sales made money, against which purchases they were matched, and what the
			figures become in his tax currency.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the market analyst expert. It grounds its answers in
// Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions,
		and of the latest news about companies and currencies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies, markets and currencies. You leverage Google
			Search to ground your assertions in a solid truth, and you know how to relate
			the latest news to the user's request.
				`}}},
		},
	}
}

// NewAccountant creates the accountant expert, in charge of the user's
// ledger and profit reports.
func NewAccountant(src Sources) *Expert {
	lib := []Function{accountsFunc(src), profitReportFunc(src), profitDetailsFunc(src)}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's brokerage ledger.
		He can list the accounts, and compute the realized profit of any account over any
		period, in any currency, with the full buy/sell match breakdown.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's brokerage ledger.
				You know how to use the Tools to extract relevant information about the
				user's accounts and realized profits. You are part of a team of experts,
				yours is everything recorded in the ledger. Pardon their approximative
				language and figure out what they meant.

				Use the available tools to get information about the user's ledger
				  - list of accounts
				  - realized profit per ticker over a period
				  - full buy/sell match breakdown
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// failure builds an error response in the shape the model expects.
func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func accountsFunc(src Sources) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Accounts",
			Description: "Accounts lists the brokerage accounts recorded in the user's ledger.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The account names, one per line.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ledger, err := src.Ledger()
			if err != nil {
				return failure(id, "Accounts", err)
			}
			return success(id, "Accounts", strings.Join(ledger.Accounts(), "\n"))
		},
	}
}

// reportSchema is the parameter schema shared by the profit functions.
var reportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"account": {
			Type:        genai.TypeString,
			Description: "The brokerage account to report on.",
		},
		"currency": {
			Type:        genai.TypeString,
			Description: "Target currency of the report, an ISO 4217 code like EUR or USD.",
		},
		"start": {
			Type:        genai.TypeString,
			Description: "First day of the reporting period, YYYY-MM-DD. Omit to leave the period open.",
		},
		"end": {
			Type:        genai.TypeString,
			Description: "Last day of the reporting period, YYYY-MM-DD. Omit to leave the period open.",
		},
	},
	Required: []string{"account", "currency"},
}

func profitReportFunc(src Sources) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ProfitReport",
			Description: `ProfitReport computes the realized profit of each ticker sold in the period,
			matching sells against buys first-in first-out, every figure converted into the target currency.`,
			Parameters: reportSchema,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the profit per ticker with the grand total.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := computeReport(src, args)
			if err != nil {
				return failure(id, "ProfitReport", err)
			}
			return success(id, "ProfitReport", renderer.TotalMarkdown(report))
		},
	}
}

func profitDetailsFunc(src Sources) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ProfitDetails",
			Description: `ProfitDetails shows every buy/sell match behind the profit figures,
			with the exchange rate applied to each leg.`,
			Parameters: reportSchema,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with one table of matches per ticker.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := computeReport(src, args)
			if err != nil {
				return failure(id, "ProfitDetails", err)
			}
			return success(id, "ProfitDetails", renderer.DetailsMarkdown(report))
		},
	}
}

// computeReport loads the sources and runs the profit service with the
// model's arguments.
func computeReport(src Sources, args map[string]any) (*portfolio.DetailsReport, error) {
	account, _ := args["account"].(string)
	currency, _ := args["currency"].(string)
	if account == "" || currency == "" {
		return nil, fmt.Errorf("both 'account' and 'currency' arguments are required")
	}
	from, err := parseBound(args, "start")
	if err != nil {
		return nil, err
	}
	to, err := parseBound(args, "end")
	if err != nil {
		return nil, err
	}

	ledger, err := src.Ledger()
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	rates, err := src.Rates()
	if err != nil {
		return nil, fmt.Errorf("could not load rates: %w", err)
	}
	service := portfolio.NewProfitService(ledger, rates)
	return service.TotalDetails(account, currency, from, to)
}

func parseBound(args map[string]any, key string) (time.Time, error) {
	raw, ok := args[key]
	if !ok {
		return time.Time{}, nil
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("argument %q is not a string as expected but %T", key, raw)
	}
	if s == "" {
		return time.Time{}, nil
	}
	d, err := portfolio.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("argument %q must be a YYYY-MM-DD date, got %q", key, s)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}
