package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PurgeRecord represents a single entity handled within a transaction.
type PurgeRecord struct {
	Kind   string `json:"kind"`             // entity kind (user, group)
	Name   string `json:"name"`             // entity name
	ID     int    `json:"id,omitempty"`     // numeric id, when resolved
	Status string `json:"status"`           // removed, simulated, failed, skipped
	Detail string `json:"detail,omitempty"` // failure or exemption detail
}

// Transaction represents a complete purge run.
type Transaction struct {
	ID        string        `json:"id"`
	Timestamp string        `json:"timestamp"`
	Host      string        `json:"host"`
	DryRun    bool          `json:"dry_run"`
	Status    string        `json:"status"` // success, failed
	Records   []PurgeRecord `json:"records"`
}

// HistoryManager manages the persistent history of transactions.
type HistoryManager struct {
	HistoryFile string
}

func NewHistoryManager(baseDir string) *HistoryManager {
	if baseDir == "" {
		home, _ := os.UserHomeDir()
		baseDir = filepath.Join(home, ".puppet")
	}
	return &HistoryManager{
		HistoryFile: filepath.Join(baseDir, "history.json"),
	}
}

// NewTransaction starts a transaction stamped with the current time.
func NewTransaction(host string, dryRun bool) Transaction {
	now := time.Now()
	return Transaction{
		ID:        now.Format("20060102-150405"),
		Timestamp: now.Format(time.RFC3339),
		Host:      host,
		DryRun:    dryRun,
		Status:    "success",
	}
}

// AddTransaction appends a new transaction to the history.
func (hm *HistoryManager) AddTransaction(tx Transaction) error {
	history, err := hm.LoadHistory()
	if err != nil {
		history = []Transaction{}
	}

	// Append to file, newest rendered first in the UI.
	history = append(history, tx)

	return hm.saveHistory(history)
}

// LoadHistory reads the history file.
func (hm *HistoryManager) LoadHistory() ([]Transaction, error) {
	data, err := os.ReadFile(hm.HistoryFile)
	if err != nil {
		if os.IsNotExist(err) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	var history []Transaction
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	return history, nil
}

func (hm *HistoryManager) saveHistory(history []Transaction) error {
	dir := filepath.Dir(hm.HistoryFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(hm.HistoryFile, data, 0644)
}
