package openai_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/trafikskolan/supportbot/models"
)

const (
	openaiAPIURL = "https://api.openai.com/v1/chat/completions"
)

// client implements the provider interfaces using OpenAI's API
type client struct {
	apiKey          string
	completionModel string
	temperature     float64
	maxTokens       int
	httpClient      *http.Client
}

// Message represents a message in a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request represents a request to the OpenAI API
type request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// response represents a response from the OpenAI API
type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, completionModel string, temperature float64, maxTokens int, timeout time.Duration) *client {
	return &client{
		apiKey:          apiKey,
		completionModel: completionModel,
		temperature:     temperature,
		maxTokens:       maxTokens,
		httpClient:      &http.Client{Timeout: timeout},
	}
}

const nluSystemPrompt = `Du är en NLU-expert som konverterar användarfrågor till söksträngar för en trafikskolekatalog.

REGLER:
1. Returnera JSON: { "queries": ["söksträng1", "söksträng2"], "intent": "typ", "city": "stad eller null", "area": "område eller null" }
2. Normalisera: "moppe"/"moped" -> "AM Mopedutbildning"
3. Identifiera stad OCH område i frågan (även stavfel och förkortningar)
4. För prisfrågor: lägg alltid till "pris"
5. För innehållsfrågor: lägg alltid till "innehåll" eller specifika delar (teori, manöverkörning)
6. Separera olika ämnen (AM och BIL är olika queries)
7. Håll söksträngar kortfattade men precisa
8. Om stad/område nämns: inkludera i query OCH i city/area-fältet
9. Känn igen områden: Limhamn, Österåker, City, Hälsobacken, etc.

EXEMPEL:
"vad kostar moppe" -> { "queries": ["AM Mopedutbildning pris"], "intent": "pris", "city": null, "area": null }
"am-kurs göteborg pris" -> { "queries": ["AM Mopedutbildning Göteborg pris"], "intent": "pris", "city": "Göteborg", "area": null }
"bilkörlektion limhamn" -> { "queries": ["Körlektion BIL Limhamn pris"], "intent": "pris", "city": "Malmö", "area": "Limhamn" }
"am österåker" -> { "queries": ["AM Mopedutbildning Österåker pris"], "intent": "pris", "city": "Stockholm", "area": "Österåker" }
"vad kostar en lektion helsingborg" -> { "queries": ["Körlektion pris Helsingborg"], "intent": "pris", "city": "Helsingborg", "area": null }`

// ExpandQuery asks the model to turn a raw customer question into search
// query variants plus intent and location guesses.
func (c *client) ExpandQuery(ctx context.Context, question string) (models.QueryIntent, error) {
	messages := []Message{
		{Role: "system", Content: nluSystemPrompt},
		{Role: "user", Content: question},
	}

	responseStr, err := c.sendRequest(ctx, messages, true)
	if err != nil {
		return models.QueryIntent{}, err
	}

	var intent models.QueryIntent
	if err := json.Unmarshal([]byte(responseStr), &intent); err != nil {
		return models.QueryIntent{}, fmt.Errorf("failed to parse NLU response: %w", err)
	}
	if len(intent.Queries) == 0 {
		return models.QueryIntent{}, fmt.Errorf("NLU response contained no queries")
	}
	return intent, nil
}

const ragSystemPrompt = `Du är kundtjänst för svensk trafikskola.

ABSOLUTA REGLER - FÅR ALDRIG BRYTAS:
1. Använd ENDAST information från "Kontext" nedan - INGEN egen kunskap eller gissningar
2. För priser: använd EXAKT det pris som står i Kontext för den specifika staden/kontoret
3. Om flera kontor finns i samma stad, specificera ALLTID vilket kontor priset gäller för
4. Om Kontext säger "1249 SEK i Helsingborg - City", skriv "1249 SEK på vårt kontor Helsingborg - City"
5. KRITISKT FÖR "VAD INGÅR" FRÅGOR:
   - Om frågan innehåller "ingår" eller "innehåll", svara FÖRST med vad som ingår
   - Om Kontext säger "teori, manöverkörning, körning i trafik", inkludera ALLA tre
   - Nämn också: "lån av moped, hjälm och skyddsutrustning" om det finns i Kontext
   - Svara ALLTID på "vad ingår" FÖRE tider/priser
6. Om frågan nämner en stad/område, MÅSTE svaret nämna samma stad/område
7. Använd alltid exakta termer från Kontext:
   - "AM Mopedutbildning" (INTE "mopedkurs")
   - "Körlektion BIL" (INTE bara "körlektion")
   - "krävs" (INTE "behöver")
   - "inte tillåtet" (INTE "tyvärr inte")
   - "övningsköra privat" (hela frasen)
8. Om Kontext saknar information: Förklara vad som saknas för att kunna svara
9. Inkludera bokningslänk när relevant: "Boka här: [länk]"
10. KRITISKT: Hänvisa ALDRIG till telefonnummer - användaren chattar redan med support!`

// GenerateAnswer produces the customer-facing answer from the retrieved
// context. A resolved location is prepended as a hint line so the model
// answers for the right office.
func (c *client) GenerateAnswer(ctx context.Context, question, contextBlock, city, area string) (string, error) {
	if area != "" && city != "" {
		contextBlock = fmt.Sprintf("VIKTIG PLATS: %s - %s\n\n%s", city, area, contextBlock)
	} else if city != "" {
		contextBlock = fmt.Sprintf("VIKTIG STAD: %s\n\n%s", city, contextBlock)
	}

	messages := []Message{
		{Role: "system", Content: ragSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Fråga: %s\n\nKontext:\n%s", question, contextBlock)},
	}

	return c.sendRequest(ctx, messages, false)
}

// sendRequest sends a request to the OpenAI API
func (c *client) sendRequest(ctx context.Context, messages []Message, jsonMode bool) (string, error) {
	requestBody := request{
		Model:       c.completionModel,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if jsonMode {
		requestBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openaiAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	var openaiResp response
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return openaiResp.Choices[0].Message.Content, nil
}
