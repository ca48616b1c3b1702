package ledger

import (
	"context"
	"fmt"
	"io"
)

// BackupFileName is the file name offered for ledger downloads.
const BackupFileName = "SmartCreditManager-Backup.json"

// Backup is a downloadable copy of the persisted ledger.
type Backup struct {
	FileName string
	Data     []byte
}

// Export returns the stored ledger verbatim, or [] when nothing is stored.
func (s *Service) Export(ctx context.Context) (*Backup, error) {
	raw, ok, err := s.storage.Read(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if !ok {
		raw = "[]"
	}
	return &Backup{FileName: BackupFileName, Data: []byte(raw)}, nil
}

// Import restores the ledger from a backup document.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreadableBackup, err)
	}
	n, err := s.ReplaceAll(ctx, raw)
	if err != nil {
		s.logger.Warn("backup rejected", "error", err)
		return 0, err
	}
	s.logger.Info("backup restored", "records", n)
	return n, nil
}
