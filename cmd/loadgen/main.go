// Command loadgen fires concurrent donations at a running gateway and prints
// the resulting stats, which should show total == n * amount when the
// aggregation is free of lost updates.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

func main() {
	var (
		base     = flag.String("base", "http://localhost:8080", "gateway base URL")
		campaign = flag.String("campaign", "loadgen-campaign", "campaign id")
		n        = flag.Int("n", 100, "number of concurrent donations")
		amount   = flag.Int64("amount", 100, "amount per donation, smallest unit")
	)
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	donateURL := fmt.Sprintf("%s/v1/campaigns/%s/donations", *base, *campaign)

	var wg sync.WaitGroup
	var failures int64
	var mu sync.Mutex

	start := time.Now()
	for i := 0; i < *n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{
				"donor_address": fmt.Sprintf("addr_loadgen_%d", i),
				"donor_name":    fmt.Sprintf("loadgen %d", i),
				"amount":        *amount,
			})
			resp, err := client.Post(donateURL, "application/json", bytes.NewReader(body))
			if err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusCreated {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	resp, err := client.Get(fmt.Sprintf("%s/v1/campaigns/%s/stats", *base, *campaign))
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats read failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	var stats struct {
		TotalAmount   int64 `json:"total_amount"`
		DonationCount int64 `json:"donation_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		fmt.Fprintf(os.Stderr, "stats decode failed: %v\n", err)
		os.Exit(1)
	}

	expected := int64(*n) * *amount
	fmt.Printf("sent=%d failures=%d elapsed=%s\n", *n, failures, elapsed)
	fmt.Printf("total_amount=%d (expected %d) donation_count=%d\n", stats.TotalAmount, expected, stats.DonationCount)
	if failures == 0 && stats.TotalAmount != expected {
		fmt.Println("MISMATCH: lost updates detected")
		os.Exit(1)
	}
}
