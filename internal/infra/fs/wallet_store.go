package fs

// Persisted wallet registry: <data_dir>/wallets.json maps a chat ID string to
// the ordered list of wallets that chat monitors. Every mutation is a full
// load-modify-save round trip; the save goes through a temp file and rename so
// a crash mid-write cannot corrupt the previous state. Safe for a single
// process only, there is no cross-process locking.

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	logging "universal-bot/internal/infra/log"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a chat or a wallet index does not exist.
var ErrNotFound = errors.New("wallet not found")

// WalletRecord is one monitored wallet. Records are immutable once added and
// addressed by their position in the chat's list.
type WalletRecord struct {
	Coin    string    `json:"coin"`
	Address string    `json:"address"`
	AddedAt time.Time `json:"added_at"`
}

type WalletStore struct {
	path string
}

func NewWalletStore(dataDir string) *WalletStore {
	return &WalletStore{path: filepath.Join(dataDir, "wallets.json")}
}

// Load reads the full registry. A missing file is the "no wallets yet" case
// and yields an empty map; malformed content is an error.
func (s *WalletStore) Load() (map[string][]WalletRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]WalletRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read wallets file: %w", err)
	}

	wallets := map[string][]WalletRecord{}
	if len(data) == 0 {
		return wallets, nil
	}
	if err := json.Unmarshal(data, &wallets); err != nil {
		return nil, fmt.Errorf("failed to parse wallets JSON: %w", err)
	}
	return wallets, nil
}

// Save atomically rewrites the registry file.
func (s *WalletStore) Save(wallets map[string][]WalletRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(wallets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallets JSON: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary wallets file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary wallets file: %w", err)
	}
	return nil
}

// Add appends a record for the chat unless the same (coin, address) pair is
// already registered there. Returns false without mutating on a duplicate.
func (s *WalletStore) Add(chatID string, record WalletRecord) (bool, error) {
	wallets, err := s.Load()
	if err != nil {
		return false, err
	}

	for _, w := range wallets[chatID] {
		if w.Coin == record.Coin && w.Address == record.Address {
			return false, nil
		}
	}

	wallets[chatID] = append(wallets[chatID], record)
	if err := s.Save(wallets); err != nil {
		return false, err
	}

	logging.LogInfo("Wallet added",
		zap.String("chatID", chatID),
		zap.String("coin", record.Coin),
		zap.String("address", record.Address))
	return true, nil
}

// Remove deletes the wallet at the given position in the chat's list and
// returns it. The chat entry itself is dropped once its list is empty.
func (s *WalletStore) Remove(chatID string, index int) (WalletRecord, error) {
	wallets, err := s.Load()
	if err != nil {
		return WalletRecord{}, err
	}

	list, ok := wallets[chatID]
	if !ok || index < 0 || index >= len(list) {
		return WalletRecord{}, ErrNotFound
	}

	removed := list[index]
	list = append(list[:index], list[index+1:]...)
	if len(list) == 0 {
		delete(wallets, chatID)
	} else {
		wallets[chatID] = list
	}

	if err := s.Save(wallets); err != nil {
		return WalletRecord{}, err
	}

	logging.LogInfo("Wallet removed",
		zap.String("chatID", chatID),
		zap.String("coin", removed.Coin),
		zap.String("address", removed.Address))
	return removed, nil
}

// List returns the chat's wallets in registration order.
func (s *WalletStore) List(chatID string) ([]WalletRecord, error) {
	wallets, err := s.Load()
	if err != nil {
		return nil, err
	}
	return wallets[chatID], nil
}

// Count returns the total number of registered wallets across all chats.
func (s *WalletStore) Count() (int, error) {
	wallets, err := s.Load()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, list := range wallets {
		total += len(list)
	}
	return total, nil
}
