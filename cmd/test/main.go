package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	testColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	noteColor    = color.New(color.FgYellow)
)

type TestClient struct {
	baseURL string
	client  *http.Client
	session string
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the dashboard server")
	testType := flag.String("test", "all", "Test type: all, health, worksheets, draft")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Client Dashboard - Smoke Tests")
	testColor.Printf("Base URL: %s\n\n", *baseURL)

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		client.testHealthCheck()
	case "worksheets":
		if client.testCreateSession() {
			client.testWorksheets()
		}
	case "draft":
		if client.testCreateSession() {
			client.testDraftPersona()
		}
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, worksheets, draft")
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Create Session", tc.testCreateSession},
		{"Worksheets", tc.testWorksheets},
		{"Comparison Totals", tc.testComparison},
		{"Report", tc.testReport},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	successColor.Printf("Passed: %d\n", passed)
	errorColor.Printf("Failed: %d\n", failed)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.request(http.MethodGet, "/health", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK || string(body) != "OK" {
		printError(fmt.Sprintf("Expected 200 OK, got %d %q", status, string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testCreateSession() bool {
	printTestHeader("Creating Dashboard Session")

	status, body, err := tc.request(http.MethodPost, "/sessions", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusCreated {
		printError(fmt.Sprintf("Expected status 201, got %d", status))
		return false
	}

	var resp struct {
		Session string `json:"session"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Session == "" {
		printError(fmt.Sprintf("Invalid session response: %s", string(body)))
		return false
	}
	tc.session = "/sessions/" + resp.Session

	printSuccess("Session " + resp.Session + " created")
	return true
}

func (tc *TestClient) testWorksheets() bool {
	printTestHeader("Editing Worksheets")

	steps := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/lists/strengths/entries", nil},
		{http.MethodPut, "/lists/strengths/entries/1", map[string]string{"value": "Güçlü portföy"}},
		{http.MethodPost, "/services", nil},
		{http.MethodPut, "/services/2", map[string]string{"name": "Peyzaj"}},
		{http.MethodPatch, "/services/2/groups/1", map[string]string{"field": "interests", "value": "bahçe, doğa"}},
		{http.MethodPost, "/competitors", map[string]string{"name": "Acme Mimarlık", "website": "acme.example"}},
		{http.MethodPost, "/features", map[string]string{"feature": "Fiyat"}},
		{http.MethodPut, "/scores", map[string]string{"feature": "Fiyat", "entrant": "Acme Mimarlık", "score": "7"}},
	}

	for _, step := range steps {
		status, body, err := tc.request(step.method, tc.session+step.path, step.body)
		if err != nil {
			printError(fmt.Sprintf("%s %s failed: %v", step.method, step.path, err))
			return false
		}
		if status != http.StatusOK {
			printError(fmt.Sprintf("%s %s: expected 200, got %d", step.method, step.path, status))
			fmt.Printf("Response: %s\n", string(body))
			return false
		}
		fmt.Printf("%s %s\n", step.method, step.path)
	}

	printSuccess("Worksheet edits applied")
	return true
}

func (tc *TestClient) testComparison() bool {
	printTestHeader("Checking Comparison Totals")

	status, body, err := tc.request(http.MethodGet, tc.session+"/comparison", nil)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Comparison request failed: %v (status %d)", err, status))
		return false
	}

	var resp struct {
		GrandTotal float64 `json:"grandTotal"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if resp.GrandTotal != 7 {
		printError(fmt.Sprintf("Expected grand total 7, got %v", resp.GrandTotal))
		return false
	}

	printSuccess("Comparison totals are consistent")
	printJSON(body)
	return true
}

func (tc *TestClient) testReport() bool {
	printTestHeader("Fetching Summary Report")

	status, body, err := tc.request(http.MethodGet, tc.session+"/report", nil)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Report request failed: %v (status %d)", err, status))
		return false
	}

	printSuccess("Report generated")
	printJSON(body)
	return true
}

func (tc *TestClient) testDraftPersona() bool {
	printTestHeader("Drafting Persona")

	status, body, err := tc.request(http.MethodPost, tc.session+"/services/1/groups/1/persona/draft?apply=true", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status == http.StatusServiceUnavailable {
		noteColor.Println("Persona drafting is disabled on the server (GEMINI_API_KEY not set)")
		return true
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	printSuccess("Persona drafted and applied")
	printJSON(body)
	return true
}

func (tc *TestClient) request(method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tc.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	return resp.StatusCode, data, err
}

func printHeader(text string) {
	line := strings.Repeat("=", len(text)+4)
	headerColor.Printf("\n%s\n= %s =\n%s\n\n", line, text, line)
}

func printTestHeader(text string) {
	testColor.Printf("[TEST] %s\n", text)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	successColor.Printf("✓ %s\n", text)
}

func printError(text string) {
	errorColor.Printf("✗ %s\n", text)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		noteColor.Println("\nResponse:")
		fmt.Println(prettyJSON.String())
	}
}
