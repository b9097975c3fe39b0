package metrics

// Per-user usage statistics persisted to <data_dir>/stats.json.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	logging "universal-bot/internal/infra/log"

	"go.uber.org/zap"
)

type UserStats struct {
	Texts  int `json:"texts"`
	Errors int `json:"errors"`
}

type statsFile struct {
	UserStats map[string]UserStats `json:"user_stats"`
	BotStats  botStats             `json:"bot_stats"`
}

type botStats struct {
	TotalTexts int    `json:"total_texts"`
	TotalUsers int    `json:"total_users"`
	StartTime  string `json:"start_time"`
}

type Stats struct {
	mu    sync.Mutex
	path  string
	users map[string]UserStats
	bot   botStats
}

func NewStats(dataDir string) *Stats {
	return &Stats{
		path:  filepath.Join(dataDir, "stats.json"),
		users: map[string]UserStats{},
		bot:   botStats{StartTime: time.Now().Format(time.RFC3339)},
	}
}

// Load restores persisted counters. A missing file is a fresh start.
func (s *Stats) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	var f statsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse stats JSON: %w", err)
	}
	if f.UserStats != nil {
		s.users = f.UserStats
	}
	if f.BotStats.StartTime != "" {
		s.bot = f.BotStats
	}
	return nil
}

func (s *Stats) save() {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logging.LogWarn("Failed to create stats directory", zap.Error(err))
		return
	}

	data, err := json.MarshalIndent(statsFile{UserStats: s.users, BotStats: s.bot}, "", "  ")
	if err != nil {
		logging.LogWarn("Failed to marshal stats", zap.Error(err))
		return
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		logging.LogWarn("Failed to write stats file", zap.Error(err))
		return
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		logging.LogWarn("Failed to rename stats file", zap.Error(err))
	}
}

func (s *Stats) RecordText(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, known := s.users[userID]
	u.Texts++
	s.users[userID] = u
	s.bot.TotalTexts++
	if !known {
		s.bot.TotalUsers = len(s.users)
	}
	s.save()
	TextsProcessed.Inc()
}

func (s *Stats) RecordError(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[userID]
	u.Errors++
	s.users[userID] = u
	s.save()
	ProcessingErrors.Inc()
}

// Totals returns users, processed texts and errors across all users.
func (s *Stats) Totals() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	texts, errs := 0, 0
	for _, u := range s.users {
		texts += u.Texts
		errs += u.Errors
	}
	return len(s.users), texts, errs
}
