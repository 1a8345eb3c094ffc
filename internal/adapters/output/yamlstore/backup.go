package yamlstore

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	backupPrefix = "cards_backup_"
	backupSuffix = ".yaml"

	// Nanosecond precision keeps names unique and sortable even when
	// several mutations land within the same second.
	backupTimeLayout = "20060102_150405.000000000"
)

// DefaultMaxBackups is the retention count used when config leaves it unset
const DefaultMaxBackups = 5

// BackupRotator struct - Snapshots the catalog file after every successful
// persist and prunes all but the most recent copies. Backup hygiene never
// blocks or fails the mutation it accompanies: every failure here is logged
// and swallowed.
type BackupRotator struct {
	dir  string
	keep int
}

// NewBackupRotator creates the backup directory if needed
func NewBackupRotator(dir string, keep int) (*BackupRotator, error) {
	if keep <= 0 {
		keep = DefaultMaxBackups
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &BackupRotator{dir: dir, keep: keep}, nil
}

// Snapshot copies the just-written catalog file to a timestamped backup and
// prunes old ones. Called inside the store's mutating critical section,
// before the mutation reports success.
func (b *BackupRotator) Snapshot(sourcePath string) {
	name := backupPrefix + time.Now().UTC().Format(backupTimeLayout) + backupSuffix
	target := filepath.Join(b.dir, name)

	if err := copyFile(sourcePath, target); err != nil {
		logrus.Errorf("Catalog backup failed: %v", err)
		return
	}
	logrus.Infof("Catalog backup created: %s", name)

	b.prune()
}

// prune deletes every backup beyond the retention count, newest first by
// name (names embed sortable timestamps)
func (b *BackupRotator) prune() {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		logrus.Errorf("Listing backups failed: %v", err)
		return
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names[min(len(names), b.keep):] {
		if err := os.Remove(filepath.Join(b.dir, name)); err != nil {
			logrus.Warnf("Cannot remove old backup %s: %v", name, err)
			continue
		}
		logrus.Infof("Old backup removed: %s", name)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
