package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Smoke check for a locally running bot process: the health endpoints must
// answer 200 with the static liveness body.
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	baseURL := "http://localhost:" + port

	// Wait for server to start
	time.Sleep(2 * time.Second)

	checkEndpoint(baseURL, "/")
	checkEndpoint(baseURL, "/health")

	fmt.Println("ALL CHECKS PASSED")
}

func checkEndpoint(baseURL, path string) {
	fmt.Printf("Testing GET %s...\n", path)
	resp, err := http.Get(baseURL + path)
	if err != nil {
		log.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("GET %s: read body: %v", path, err)
	}
	if string(body) != "Bot is running" {
		log.Fatalf("GET %s: unexpected body %q", path, string(body))
	}
}
