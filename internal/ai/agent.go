package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"go-pos-backoffice/internal/repository"
)

// Agent answers back-office questions ("what sold best this week?",
// "how much is the espresso?") with read-only function calls against
// the catalogue and the sales ledger.
type Agent struct {
	products *repository.ProductRepository
	sales    *repository.SaleRepository
	apiKey   string
}

func NewAgent(products *repository.ProductRepository, sales *repository.SaleRepository, apiKey string) *Agent {
	return &Agent{products: products, sales: sales, apiKey: apiKey}
}

// Run sends the user's question through Gemini with the shop tools attached.
func (a *Agent) Run(ctx context.Context, userMessage string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a shop's back office.

	RULES:
	1. CATALOGUE: If the user asks for the PRICE, STATUS, CATEGORY or DETAILS of a product,
	   call 'check_inventory' to get the full list, then read the JSON to answer.
	   Do NOT say "I cannot get the price". You CAN get it by checking inventory.
	2. SALES: If the user asks about revenue or number of sales, use 'get_sales_report'.
	3. You are read-only. Never claim to have changed any data.

	USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full product catalogue. Use this to find ANY product details like Name, Category, Price, or Status.",
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue and order count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return a.executeCheckInventory(ctx, session)
			case "get_sales_report":
				return a.executeSalesReport(ctx, session, funcCall)
			}
		}
	}

	return printResponse(resp), nil
}

func (a *Agent) executeCheckInventory(ctx context.Context, session *genai.ChatSession) (string, error) {
	// No pagination: the agent needs the whole catalogue to answer by name.
	products, _, err := a.products.List(repository.ProductFilter{
		Page: repository.Page{Size: 1000},
	})
	if err != nil {
		return "", err
	}

	type simpleProduct struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Price    string `json:"price"`
		Status   string `json:"status"`
	}
	simpleList := make([]simpleProduct, 0, len(products))
	for _, p := range products {
		simpleList = append(simpleList, simpleProduct{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category.Name,
			Price:    p.UnitPrice.StringFixed(2),
			Status:   p.Status,
		})
	}

	jsonBytes, _ := json.Marshal(simpleList)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"catalogue": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func (a *Agent) executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := a.sales.ReportTotals(start, end)
	if err != nil {
		return "", err
	}

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue,
			"sales_count": report.TotalCount,
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
