//go:build ignore
// +build ignore

// Package main provides a manual end-to-end check of the borrowed-book queries.
//
// Usage:
//
//	go run ./scripts/borrow_smoke_test.go [records]
//
// What it does:
//  1. Creates a member, a staff account and a book over HTTP.
//  2. Fires N goroutines that each create a borrow record and attach the book.
//  3. Calls every borrowed-book query and checks that each one lists the book
//     once per resolved record.
//
// Prerequisites:
//   - Server must be running with a migrated database.
//   - SERVER_ADDR defaults to http://localhost:8080.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

const defaultServerAddr = "http://localhost:8080"

var client = &http.Client{Timeout: 10 * time.Second}

type idResponse struct {
	ID uint `json:"id"`
}

type borrowResult struct {
	RecordID uint
	Err      error
}

func main() {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}

	records := 5
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			log.Fatal("Usage: go run ./scripts/borrow_smoke_test.go [records]")
		}
		records = n
	}

	today := time.Now().Format("2006-01-02")
	stamp := time.Now().UnixNano()

	fmt.Printf("=== Library Borrow Smoke Test ===\n")
	fmt.Printf("Server  : %s\n", serverAddr)
	fmt.Printf("Records : %d\n\n", records)

	var member, staff, book idResponse
	mustPost(serverAddr+"/members", map[string]interface{}{
		"first_name": "Smoke", "last_name": "Member", "email": fmt.Sprintf("member-%d@example.com", stamp),
	}, &member)
	mustPost(serverAddr+"/staff", map[string]interface{}{
		"email": fmt.Sprintf("staff-%d@example.com", stamp), "password": "smoke-secret", "category": "librarian",
	}, &staff)
	mustPost(serverAddr+"/books", map[string]interface{}{
		"title": "Smoke Testing", "author": "Q. A. Author", "publisher": "Smoke Press", "copies": records,
	}, &book)

	results := make([]borrowResult, records)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < records; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			results[idx] = borrowBook(serverAddr, member.ID, staff.ID, book.ID, today)
		}(i)
	}

	fmt.Println("Creating borrow records simultaneously...")
	close(start)
	wg.Wait()

	var created, failures int
	for _, r := range results {
		if r.Err != nil {
			failures++
			fmt.Printf("  [ERR ] err=%v\n", r.Err)
			continue
		}
		created++
		fmt.Printf("  [BRRW] record=%d book=%d\n", r.RecordID, book.ID)
	}

	fmt.Println("\n--- Queries ---")
	queries := []string{
		fmt.Sprintf("/books/borrowed/approvedby/%d", staff.ID),
		fmt.Sprintf("/books/borrowed/%d", member.ID),
		"/books/borrowed/last30days",
		fmt.Sprintf("/books/borrowed/%s/%s", today, today),
	}
	for _, q := range queries {
		n, err := countBook(serverAddr+q, book.ID)
		switch {
		case err != nil:
			failures++
			fmt.Printf("  [ERR ] %-45s err=%v\n", q, err)
		case n != created:
			failures++
			fmt.Printf("  [FAIL] %-45s book listed %d times, want %d\n", q, n, created)
		default:
			fmt.Printf("  [ OK ] %-45s book listed %d times\n", q, n)
		}
	}

	if failures > 0 {
		fmt.Printf("\n[WARNING] %d check(s) failed; check server logs for details.\n", failures)
		os.Exit(1)
	}
}

func borrowBook(serverAddr string, memberID, staffID, bookID uint, today string) borrowResult {
	var record idResponse
	if err := post(serverAddr+"/borrowed", map[string]interface{}{
		"member_id": memberID, "staff_id": staffID, "date_borrowed": today,
	}, &record); err != nil {
		return borrowResult{Err: err}
	}

	url := fmt.Sprintf("%s/borrowed/%d/details", serverAddr, record.ID)
	if err := post(url, map[string]interface{}{"book_id": bookID, "number_of_copies": 1}, nil); err != nil {
		return borrowResult{RecordID: record.ID, Err: err}
	}
	return borrowResult{RecordID: record.ID}
}

// countBook fetches a book list and counts how often bookID appears in it.
func countBook(url string, bookID uint) (int, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d: %s", resp.StatusCode, raw)
	}

	var books []idResponse
	if err := json.Unmarshal(raw, &books); err != nil {
		return 0, fmt.Errorf("bad JSON: %s", raw)
	}
	n := 0
	for _, b := range books {
		if b.ID == bookID {
			n++
		}
	}
	return n, nil
}

func mustPost(url string, body interface{}, out interface{}) {
	if err := post(url, body, out); err != nil {
		log.Fatalf("setup failed: %v", err)
	}
}

func post(url string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bad JSON: %s", raw)
	}
	return nil
}
