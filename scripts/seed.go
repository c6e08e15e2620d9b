// Seed script for bootstrapping a local Veritas devnet over its HTTP API.
// Registers a handful of agents, creates demo beliefs, and submits a first
// round of estimates. Run with: go run ./scripts/seed.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("VERITAS_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	apiURL := os.Getenv("VERITAS_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	agents := []struct {
		address string
		stake   uint64
	}{
		{"0x1000000000000000000000000000000000000001", 1000},
		{"0x2000000000000000000000000000000000000002", 500},
		{"0x3000000000000000000000000000000000000003", 2500},
	}

	for _, a := range agents {
		if err := post(apiURL+"/v1/agents", a.address, map[string]any{"initial_stake": a.stake}, nil); err != nil {
			log.Fatalf("register %s: %v", a.address, err)
		}
		fmt.Printf("registered agent %s with stake %d\n", a.address, a.stake)
	}

	questions := []string{
		"Will the devnet produce 10000 blocks without a restart?",
		"Will total staked tokens exceed 1M by end of month?",
	}

	var beliefIDs []uint64
	for _, q := range questions {
		var belief struct {
			ID uint64 `json:"id"`
		}
		err := post(apiURL+"/v1/beliefs", agents[0].address, map[string]any{
			"question":      q,
			"initial_value": 5000,
		}, &belief)
		if err != nil {
			log.Fatalf("create belief: %v", err)
		}
		beliefIDs = append(beliefIDs, belief.ID)
		fmt.Printf("created belief %d: %s\n", belief.ID, q)
	}

	// First round of estimates on the first belief.
	values := []uint64{7000, 6000, 8000}
	for i, a := range agents {
		var res struct {
			NewAggregate uint64 `json:"new_aggregate"`
			NewScore     uint64 `json:"new_score"`
		}
		err := post(apiURL+"/v1/submissions", a.address, map[string]any{
			"belief_id": beliefIDs[0],
			"value":     values[i],
		}, &res)
		if err != nil {
			log.Fatalf("submit for %s: %v", a.address, err)
		}
		fmt.Printf("agent %s submitted %d -> aggregate %d, score %d\n",
			a.address, values[i], res.NewAggregate, res.NewScore)
	}

	fmt.Println("\nSeed complete.")
}

func post(url, caller string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Caller-Address", caller)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %s", resp.Status, raw)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}
