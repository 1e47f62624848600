package usecase

import "context"

// Dependencies represents all external dependencies needed by use cases.
//
// The backup root is shared mutable state on disk. Use cases perform no
// locking of their own: the scheduler driving this tool must never run two
// operations against the same backup root concurrently.
type Dependencies struct {
	FileSystem FileSystemPort
	Tool       BackupToolPort
	Config     ConfigPort
	Notifier   NotifierPort
	Disk       DiskPort
}

// Ports define the interfaces that use cases need (hexagonal architecture)

// FileSystemPort defines filesystem operations needed by use cases.
type FileSystemPort interface {
	ReadDir(ctx context.Context, path string) ([]DirEntry, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	CreateDir(ctx context.Context, path string, perm int) error
	RemoveAll(ctx context.Context, path string) error

	Join(elements ...string) string
	Base(path string) string

	IsNotExist(err error) bool
	IsPermission(err error) bool
}

// BackupToolPort drives the external physical-backup tool. Every call blocks
// until the tool exits; callers wanting a timeout wrap ctx, and on expiry
// must treat the target directory as a failed partial snapshot.
type BackupToolPort interface {
	// FullBackup writes a compressed full backup into targetDir.
	FullBackup(ctx context.Context, targetDir string) (ToolResult, error)

	// IncrementalBackup writes a delta against baseDir into targetDir.
	IncrementalBackup(ctx context.Context, targetDir, baseDir string) (ToolResult, error)

	// Prepare applies transaction logs onto targetDir. A non-empty
	// incrementalDir layers that delta onto the target. applyLogOnly keeps
	// the target open for further increments; the terminal step runs
	// without it.
	Prepare(ctx context.Context, targetDir, incrementalDir string, applyLogOnly bool) (ToolResult, error)

	// CopyBack restores a prepared backup into the database data directory.
	CopyBack(ctx context.Context, backupDir, dataDir string) (ToolResult, error)
}

// ConfigPort defines configuration operations needed by use cases.
type ConfigPort interface {
	Load(ctx context.Context, path string) (ConfigFile, error)
	Save(ctx context.Context, path string, cfg ConfigFile) error
}

// NotifierPort sends operator notifications about backup outcomes.
type NotifierPort interface {
	Send(ctx context.Context, subject, body string) error
}

// DiskPort reports free space for preflight checks.
type DiskPort interface {
	FreeBytes(ctx context.Context, path string) (uint64, error)
}
