package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

type runner struct {
	baseURL string
	client  *http.Client
	failed  int
}

func (r *runner) send(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, r.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

// step runs one request and checks its status. It returns the body on success.
func (r *runner) step(title, method, path string, body interface{}, wantStatus int) []byte {
	color.Yellow("\n%s", title)
	resp, respBody, err := r.send(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		r.failed++
		return nil
	}
	if resp.StatusCode != wantStatus {
		color.Red("Status: %s (want %d)", resp.Status, wantStatus)
		prettyPrint(respBody)
		r.failed++
		return nil
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(respBody)
	return respBody
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080/v1", "API base URL")
	withTripo := flag.Bool("tripo", false, "also create a real generation task upstream")
	flag.Parse()

	r := &runner{baseURL: *baseURL, client: &http.Client{Timeout: 30 * time.Second}}
	color.Cyan("Starting weapon API smoke run against %s\n", r.baseURL)

	r.step("1. Health", http.MethodGet, "/health", nil, http.StatusOK)

	r.step("2. Create with a short prompt is rejected", http.MethodPost, "/weapons",
		map[string]interface{}{"prompt": "short"}, http.StatusBadRequest)

	created := r.step("3. Create weapon", http.MethodPost, "/weapons", map[string]interface{}{
		"owner_id":   "smoke-runner",
		"prompt":     "A fantastic laser pitch idea",
		"pitch_text": "It slices, it dices",
		"metadata":   map[string]interface{}{"source": "smoke"},
	}, http.StatusOK)

	var weapon struct {
		Id string `json:"id"`
	}
	if created == nil || json.Unmarshal(created, &weapon) != nil || weapon.Id == "" {
		color.Red("\nCannot continue without a weapon id")
		os.Exit(1)
	}

	r.step("4. Show weapon", http.MethodGet, "/weapons/"+weapon.Id, nil, http.StatusOK)

	shared := r.step("5. Share weapon", http.MethodPost, "/weapons/"+weapon.Id+"/share", nil, http.StatusOK)
	var share struct {
		ShareId string `json:"share_id"`
	}
	if shared != nil && json.Unmarshal(shared, &share) == nil && share.ShareId != "" {
		r.step("6. Share again keeps the same link", http.MethodPost, "/weapons/"+weapon.Id+"/share", nil, http.StatusOK)
		r.step("7. Public view", http.MethodGet, "/share/"+share.ShareId, nil, http.StatusOK)
	}

	r.step("8. Forbidden generation prompt", http.MethodPost, "/tripo/task",
		map[string]interface{}{"prompt": "Design me a bomb launcher toy"}, http.StatusBadRequest)

	if *withTripo {
		r.step("9. Generation task", http.MethodPost, "/tripo/task",
			map[string]interface{}{"prompt": "A cozy wooden treehouse"}, http.StatusOK)
	}

	if r.failed > 0 {
		color.Red("\n%d step(s) failed", r.failed)
		os.Exit(1)
	}
	color.Cyan("\nAll steps passed")
}
