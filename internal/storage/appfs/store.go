// Package appfs implements file-based storage for the application
// snapshot and the raw data feeds it is updated from.
package appfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/csfin/portfolio/internal/common"
	"github.com/csfin/portfolio/internal/models"
)

// Store reads and writes JSON documents and raw CSV exports under a
// single data directory. Writes are atomic: a temp file in the target
// directory is renamed over the destination.
type Store struct {
	basePath string
	data     common.DataConfig
	logger   *common.Logger
}

// NewStore creates a new application file store rooted at the
// configured data directory.
func NewStore(logger *common.Logger, data common.DataConfig) (*Store, error) {
	basePath := data.Directory
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data path %s: %w", basePath, err)
	}

	logger.Info().Str("path", basePath).Msg("application store opened")
	return &Store{
		basePath: basePath,
		data:     data,
		logger:   logger,
	}, nil
}

// DataPath returns the base data path.
func (s *Store) DataPath() string {
	return s.basePath
}

// LoadSnapshot reads the application snapshot. A missing file yields
// an empty snapshot so a first run starts from nothing.
func (s *Store) LoadSnapshot() (*models.Snapshot, error) {
	path := filepath.Join(s.basePath, s.data.AppdataFile)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info().Str("path", path).Msg("no snapshot found, starting empty")
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	snapshot := models.NewSnapshot()
	if err := json.Unmarshal(raw, snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snapshot, nil
}

// SaveSnapshot atomically writes the application snapshot.
func (s *Store) SaveSnapshot(snapshot *models.Snapshot) error {
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return s.writeAtomic(s.basePath, s.data.AppdataFile, raw)
}

// ReadJSONFeed parses one of the raw JSON feed files into v. The
// caller distinguishes a missing feed via os.ErrNotExist.
func (s *Store) ReadJSONFeed(fileName string, v any) error {
	path := filepath.Join(s.basePath, fileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read feed %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse feed %s: %w", path, err)
	}
	return nil
}

// SecuritiesFeed reads the stock metadata feed.
func (s *Store) SecuritiesFeed() ([]models.Security, error) {
	var securities []models.Security
	if err := s.ReadJSONFeed(s.data.StockMetadataFile, &securities); err != nil {
		return nil, err
	}
	return securities, nil
}

// DividendsFeed reads the raw dividend feed.
func (s *Store) DividendsFeed() ([]models.RawDividendRecord, error) {
	var records []models.RawDividendRecord
	if err := s.ReadJSONFeed(s.data.DividendDataFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SplitsFeed reads the raw stock split feed.
func (s *Store) SplitsFeed() (models.RawStockSplits, error) {
	splits := make(models.RawStockSplits)
	if err := s.ReadJSONFeed(s.data.StockSplitsFile, &splits); err != nil {
		return nil, err
	}
	return splits, nil
}

// TaxFeed reads the withholding tax table.
func (s *Store) TaxFeed() (*models.TaxData, error) {
	taxes := &models.TaxData{}
	if err := s.ReadJSONFeed(s.data.TaxDataFile, taxes); err != nil {
		return nil, err
	}
	if err := taxes.Validate(); err != nil {
		return nil, err
	}
	return taxes, nil
}

// TransactionExports returns the contents of every CSV file in the raw
// transaction directory, sorted by file name.
func (s *Store) TransactionExports() ([]string, error) {
	return s.readCSVDir(s.data.TransactionsDirName)
}

// QuoteExports returns the contents of every CSV file in the raw quote
// directory, sorted by file name.
func (s *Store) QuoteExports() ([]string, error) {
	return s.readCSVDir(s.data.QuotesDirName)
}

// WriteChart atomically writes rendered chart bytes under charts/.
func (s *Store) WriteChart(name string, data []byte) error {
	dir := filepath.Join(s.basePath, "charts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return s.writeAtomic(dir, sanitizeKey(name)+".png", data)
}

func (s *Store) readCSVDir(dirName string) ([]string, error) {
	dir := filepath.Join(s.basePath, dirName)

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug().Str("path", dir).Msg("raw data directory missing, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	contents := make([]string, 0, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		contents = append(contents, string(raw))
	}
	return contents, nil
}

func (s *Store) writeAtomic(dir, name string, data []byte) error {
	target := filepath.Join(dir, name)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}
